package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/model"
)

// TargetSweeper runs a matching sweep for a single user.
type TargetSweeper interface {
	RunSweep(ctx context.Context, targetUserID *uuid.UUID) (int, error)
}

// Profile reads and edits user profiles. Profile edits that leave the
// profile completed trigger a targeted matching sweep for that user.
type Profile struct {
	userStore model.UserStore
	sweeper   TargetSweeper
	logger    *logger.Logger
}

func NewProfile(userStore model.UserStore, sweeper TargetSweeper, logger *logger.Logger) *Profile {
	return &Profile{
		userStore: userStore,
		sweeper:   sweeper,
		logger:    logger,
	}
}

func (s *Profile) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Update applies non-empty profile fields, recomputes the completion flag
// and, for a completed profile, runs a targeted sweep. A sweep failure is
// logged and does not fail the update: the periodic sweep will catch up.
func (s *Profile) Update(ctx context.Context, params model.UpdateProfileParams) (model.User, error) {
	if params.OfferLevel != "" && !params.OfferLevel.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown offer level %q", model.ErrValidation, params.OfferLevel)
	}
	if params.WantLevel != "" && !params.WantLevel.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown want level %q", model.ErrValidation, params.WantLevel)
	}

	user, err := s.userStore.GetByID(ctx, params.UserID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if params.Name != "" {
		user.Name = params.Name
	}
	if params.OfferSkill != "" {
		user.OfferSkill = params.OfferSkill
	}
	if params.OfferLevel != "" {
		user.OfferLevel = params.OfferLevel
	}
	if params.WantSkill != "" {
		user.WantSkill = params.WantSkill
	}
	if params.WantLevel != "" {
		user.WantLevel = params.WantLevel
	}
	if params.Timezone != "" {
		user.Timezone = params.Timezone
	}
	user.CheckProfileCompleted()

	saved, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if saved.ProfileCompleted {
		created, err := s.sweeper.RunSweep(ctx, &saved.ID)
		if err != nil {
			s.logger.Error("targeted sweep failed", "user_id", saved.ID, "error", err)
		} else if created > 0 {
			s.logger.Info("targeted sweep created matches", "user_id", saved.ID, "count", created)
		}
	}

	return saved, nil
}
