package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	ListCompleted(ctx context.Context) ([]User, error)
	UpdateTrust(ctx context.Context, id uuid.UUID, trustScore float64, totalReviews int) error
}

// Level is a self-assessed skill level.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Valid reports whether the level is one of the known values.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// User represents a participant offering one skill and wanting another.
type User struct {
	ID               uuid.UUID
	Name             string
	Email            string
	OfferSkill       string
	OfferLevel       Level
	WantSkill        string
	WantLevel        Level
	Timezone         string
	ProfileCompleted bool
	TrustScore       float64
	TotalReviews     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CheckProfileCompleted recomputes the derived completion flag.
// A profile is complete when both skill fields are set.
func (u *User) CheckProfileCompleted() bool {
	u.ProfileCompleted = u.OfferSkill != "" && u.WantSkill != ""
	return u.ProfileCompleted
}

// UpdateProfileParams contains the profile fields a user may edit. Empty
// fields are left unchanged.
type UpdateProfileParams struct {
	UserID     uuid.UUID
	Name       string
	OfferSkill string
	OfferLevel Level
	WantSkill  string
	WantLevel  Level
	Timezone   string
}
