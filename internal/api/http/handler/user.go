package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/model"
)

// ProfileService defines profile read and edit operations.
type ProfileService interface {
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	Update(ctx context.Context, params model.UpdateProfileParams) (model.User, error)
}

// User handles HTTP endpoints for user profiles.
type User struct {
	profileService ProfileService
	logger         *logger.Logger
}

func NewUser(profileService ProfileService, logger *logger.Logger) *User {
	return &User{
		profileService: profileService,
		logger:         logger,
	}
}

type userResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	OfferSkill       string    `json:"offer_skill"`
	OfferLevel       string    `json:"offer_level"`
	WantSkill        string    `json:"want_skill"`
	WantLevel        string    `json:"want_level"`
	Timezone         string    `json:"timezone"`
	ProfileCompleted bool      `json:"profile_completed"`
	TrustScore       float64   `json:"trust_score"`
	TotalReviews     int       `json:"total_reviews"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		OfferSkill:       u.OfferSkill,
		OfferLevel:       string(u.OfferLevel),
		WantSkill:        u.WantSkill,
		WantLevel:        string(u.WantLevel),
		Timezone:         u.Timezone,
		ProfileCompleted: u.ProfileCompleted,
		TrustScore:       u.TrustScore,
		TotalReviews:     u.TotalReviews,
	}
}

// Get returns a user profile, e.g. for viewing a match partner.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userID"])
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid user id", model.ErrValidation))
		return
	}

	user, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	OfferSkill string `json:"offer_skill"`
	OfferLevel string `json:"offer_level"`
	WantSkill  string `json:"want_skill"`
	WantLevel  string `json:"want_level"`
	Timezone   string `json:"timezone"`
}

// UpdateProfile edits a user's offer/want skills and triggers a targeted
// sweep when the profile ends up completed.
func (h *User) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userID"])
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid user id", model.ErrValidation))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	user, err := h.profileService.Update(r.Context(), model.UpdateProfileParams{
		UserID:     userID,
		Name:       req.Name,
		OfferSkill: req.OfferSkill,
		OfferLevel: model.Level(req.OfferLevel),
		WantSkill:  req.WantSkill,
		WantLevel:  model.Level(req.WantLevel),
		Timezone:   req.Timezone,
	})
	if err != nil {
		h.logger.Error("profile update failed", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
