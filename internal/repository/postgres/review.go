package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap-server/internal/model"
)

var _ model.ReviewStore = (*ReviewRepository)(nil)

type ReviewRepository struct {
	db *Connection
}

func NewReviewRepository(db *Connection) *ReviewRepository {
	return &ReviewRepository{
		db: db,
	}
}

const reviewColumns = `id, from_user_id, to_user_id, match_id, rating_teaching, rating_exchange,
		comment, exchange_completed, created_at`

func scanReview(row pgx.Row) (model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID, &rv.FromUserID, &rv.ToUserID, &rv.MatchID, &rv.RatingTeaching, &rv.RatingExchange,
		&rv.Comment, &rv.ExchangeCompleted, &rv.CreatedAt,
	)
	return rv, err
}

// Create inserts a review. The unique index on (from_user_id, match_id)
// makes the one-review-per-match guard atomic with the insert; a duplicate
// surfaces as model.ErrConflict, never overwriting the first review.
func (r *ReviewRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	query := `
		INSERT INTO reviews (id, from_user_id, to_user_id, match_id, rating_teaching, rating_exchange,
			comment, exchange_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (from_user_id, match_id) DO NOTHING
		RETURNING ` + reviewColumns

	saved, err := scanReview(r.db.QueryRow(ctx, query,
		review.ID, review.FromUserID, review.ToUserID, review.MatchID,
		review.RatingTeaching, review.RatingExchange, review.Comment, review.ExchangeCompleted,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Review{}, model.ErrConflict
		}
		return model.Review{}, err
	}

	return saved, nil
}

func (r *ReviewRepository) GetPartner(ctx context.Context, matchID, fromUserID, toUserID uuid.UUID) (model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE match_id = $1 AND from_user_id = $2 AND to_user_id = $3`

	review, err := scanReview(r.db.QueryRow(ctx, query, matchID, fromUserID, toUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Review{}, model.ErrNotFound
		}
		return model.Review{}, err
	}

	return review, nil
}

func (r *ReviewRepository) ListForUser(ctx context.Context, toUserID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE to_user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, toUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

// AggregateForUser computes the review count and the mean of
// (rating_teaching + rating_exchange) / 2 over every review the user has
// received. Computing the aggregate in SQL is observably identical to
// rescanning the rows in application code.
func (r *ReviewRepository) AggregateForUser(ctx context.Context, toUserID uuid.UUID) (model.ReviewAggregate, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG((rating_teaching + rating_exchange) / 2.0), 0)
		FROM reviews
		WHERE to_user_id = $1`

	var agg model.ReviewAggregate
	if err := r.db.QueryRow(ctx, query, toUserID).Scan(&agg.Count, &agg.Mean); err != nil {
		return model.ReviewAggregate{}, err
	}

	return agg, nil
}
