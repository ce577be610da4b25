package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReviewStore defines persistence operations for reviews. Create must reject
// a second review from the same user for the same match.
type ReviewStore interface {
	Create(ctx context.Context, review Review) (Review, error)
	GetPartner(ctx context.Context, matchID, fromUserID, toUserID uuid.UUID) (Review, error)
	ListForUser(ctx context.Context, toUserID uuid.UUID) ([]Review, error)
	AggregateForUser(ctx context.Context, toUserID uuid.UUID) (ReviewAggregate, error)
}

// Review is one party's rating of a completed exchange. Reviews are created
// once and never edited or deleted.
type Review struct {
	ID                uuid.UUID
	FromUserID        uuid.UUID
	ToUserID          uuid.UUID
	MatchID           uuid.UUID
	RatingTeaching    int
	RatingExchange    int
	Comment           string
	ExchangeCompleted bool
	CreatedAt         time.Time
}

// ReviewAggregate is the count and mean of (teaching+exchange)/2 over all
// reviews a user has received.
type ReviewAggregate struct {
	Count int
	Mean  float64
}

// SubmitReviewParams contains parameters to submit a review.
type SubmitReviewParams struct {
	FromUserID        uuid.UUID
	ToUserID          uuid.UUID
	MatchID           uuid.UUID
	RatingTeaching    int `validate:"min=1,max=5"`
	RatingExchange    int `validate:"min=1,max=5"`
	Comment           string
	ExchangeCompleted bool
}
