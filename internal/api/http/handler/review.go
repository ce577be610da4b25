package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/model"
)

// ReviewService defines review submission and lookup operations.
type ReviewService interface {
	Submit(ctx context.Context, params model.SubmitReviewParams) (model.Review, error)
	ListForUser(ctx context.Context, toUserID uuid.UUID) ([]model.Review, error)
}

// Review handles HTTP endpoints for reviews.
type Review struct {
	reviewService ReviewService
	logger        *logger.Logger
}

func NewReview(reviewService ReviewService, logger *logger.Logger) *Review {
	return &Review{
		reviewService: reviewService,
		logger:        logger,
	}
}

type submitReviewRequest struct {
	FromUserID        uuid.UUID `json:"from_user_id"`
	ToUserID          uuid.UUID `json:"to_user_id"`
	MatchID           uuid.UUID `json:"match_id"`
	RatingTeaching    int       `json:"rating_teaching"`
	RatingExchange    int       `json:"rating_exchange"`
	Comment           string    `json:"comment"`
	ExchangeCompleted bool      `json:"exchange_completed"`
}

type reviewResponse struct {
	ID                uuid.UUID `json:"id"`
	FromUserID        uuid.UUID `json:"from_user_id"`
	ToUserID          uuid.UUID `json:"to_user_id"`
	MatchID           uuid.UUID `json:"match_id"`
	RatingTeaching    int       `json:"rating_teaching"`
	RatingExchange    int       `json:"rating_exchange"`
	Comment           string    `json:"comment"`
	ExchangeCompleted bool      `json:"exchange_completed"`
	CreatedAt         time.Time `json:"created_at"`
}

func toReviewResponse(rv model.Review) reviewResponse {
	return reviewResponse{
		ID:                rv.ID,
		FromUserID:        rv.FromUserID,
		ToUserID:          rv.ToUserID,
		MatchID:           rv.MatchID,
		RatingTeaching:    rv.RatingTeaching,
		RatingExchange:    rv.RatingExchange,
		Comment:           rv.Comment,
		ExchangeCompleted: rv.ExchangeCompleted,
		CreatedAt:         rv.CreatedAt,
	}
}

// Submit creates a review for a match.
func (h *Review) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	review, err := h.reviewService.Submit(r.Context(), model.SubmitReviewParams{
		FromUserID:        req.FromUserID,
		ToUserID:          req.ToUserID,
		MatchID:           req.MatchID,
		RatingTeaching:    req.RatingTeaching,
		RatingExchange:    req.RatingExchange,
		Comment:           req.Comment,
		ExchangeCompleted: req.ExchangeCompleted,
	})
	if err != nil {
		h.logger.Error("review submission failed",
			"match_id", req.MatchID, "from_user", req.FromUserID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

// ListForUser returns the reviews a user has received.
func (h *Review) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userID"])
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid user id", model.ErrValidation))
		return
	}

	reviews, err := h.reviewService.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list reviews", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		resp = append(resp, toReviewResponse(rv))
	}
	writeJSON(w, http.StatusOK, resp)
}
