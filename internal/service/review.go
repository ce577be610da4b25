package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/model"
)

// Review accepts review submissions and closes the reputation loop: every
// durable review recomputes the recipient's trust score, and a mutual
// completed exchange transitions the match to completed.
type Review struct {
	reviewStore model.ReviewStore
	matchStore  model.MatchStore
	userStore   model.UserStore
	validate    *validator.Validate
	logger      *logger.Logger
}

func NewReview(
	reviewStore model.ReviewStore,
	matchStore model.MatchStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Review {
	return &Review{
		reviewStore: reviewStore,
		matchStore:  matchStore,
		userStore:   userStore,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Submit creates a review. Reviews are only accepted for an active match: a
// pending or cancelled match has had no exchange to rate, and a completed
// match already holds both reviews. At most one review per (reviewer, match)
// exists; a second attempt reports a conflict instead of overwriting the
// first.
func (s *Review) Submit(ctx context.Context, params model.SubmitReviewParams) (model.Review, error) {
	if err := s.validate.Struct(params); err != nil {
		return model.Review{}, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	match, err := s.matchStore.GetByID(ctx, params.MatchID)
	if err != nil {
		return model.Review{}, fmt.Errorf("failed to get match: %w", err)
	}

	if !match.Involves(params.FromUserID) {
		return model.Review{}, model.ErrUnauthorized
	}
	if match.Partner(params.FromUserID) != params.ToUserID {
		return model.Review{}, fmt.Errorf("%w: recipient is not the match partner", model.ErrValidation)
	}
	if match.Status != model.MatchStatusActive {
		return model.Review{}, fmt.Errorf("%w: match is not active", model.ErrConflict)
	}

	review := model.Review{
		ID:                uuid.New(),
		FromUserID:        params.FromUserID,
		ToUserID:          params.ToUserID,
		MatchID:           params.MatchID,
		RatingTeaching:    params.RatingTeaching,
		RatingExchange:    params.RatingExchange,
		Comment:           params.Comment,
		ExchangeCompleted: params.ExchangeCompleted,
	}

	saved, err := s.reviewStore.Create(ctx, review)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.Review{}, fmt.Errorf("%w: review already submitted for this match", model.ErrConflict)
		}
		return model.Review{}, fmt.Errorf("failed to save review: %w", err)
	}

	if err := s.recomputeTrust(ctx, params.ToUserID); err != nil {
		return model.Review{}, err
	}

	if err := s.closeIfMutuallyCompleted(ctx, saved); err != nil {
		return model.Review{}, err
	}

	return saved, nil
}

// ListForUser returns every review a user has received, newest first.
func (s *Review) ListForUser(ctx context.Context, toUserID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviewStore.ListForUser(ctx, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// recomputeTrust sets the recipient's trust score to the mean of
// (teaching+exchange)/2 over all reviews ever received, rounded to two
// decimal places.
func (s *Review) recomputeTrust(ctx context.Context, userID uuid.UUID) error {
	agg, err := s.reviewStore.AggregateForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	trust := math.Round(agg.Mean*100) / 100
	if err := s.userStore.UpdateTrust(ctx, userID, trust, agg.Count); err != nil {
		return fmt.Errorf("failed to update trust score: %w", err)
	}

	return nil
}

// closeIfMutuallyCompleted transitions the match to completed once both
// parties have attested a completed exchange.
func (s *Review) closeIfMutuallyCompleted(ctx context.Context, review model.Review) error {
	if !review.ExchangeCompleted {
		return nil
	}

	partner, err := s.reviewStore.GetPartner(ctx, review.MatchID, review.ToUserID, review.FromUserID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up partner review: %w", err)
	}
	if !partner.ExchangeCompleted {
		return nil
	}

	_, transitioned, err := s.matchStore.Complete(ctx, review.MatchID)
	if err != nil {
		return fmt.Errorf("failed to complete match: %w", err)
	}
	if transitioned {
		s.logger.Info("match completed", "match_id", review.MatchID)
	}

	return nil
}
