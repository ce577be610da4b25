package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap-server/internal/model"
)

var _ model.MatchStore = (*MatchRepository)(nil)

type MatchRepository struct {
	db *Connection
}

func NewMatchRepository(db *Connection) *MatchRepository {
	return &MatchRepository{
		db: db,
	}
}

const matchColumns = `id, user1_id, user2_id, status, user1_accepted, user2_accepted, match_score,
		user1_teaches, user1_learns, user2_teaches, user2_learns, created_at, updated_at`

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID, &m.User1ID, &m.User2ID, &m.Status, &m.User1Accepted, &m.User2Accepted, &m.MatchScore,
		&m.SkillMatch.User1Teaches, &m.SkillMatch.User1Learns,
		&m.SkillMatch.User2Teaches, &m.SkillMatch.User2Learns,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// Create inserts a pending match. A partial unique index on the normalized
// unordered pair, restricted to open statuses, makes the duplicate guard
// atomic with the insert: losing the race surfaces as model.ErrConflict.
func (r *MatchRepository) Create(ctx context.Context, match model.Match) (model.Match, error) {
	query := `
		INSERT INTO matches (id, user1_id, user2_id, status, user1_accepted, user2_accepted, match_score,
			user1_teaches, user1_learns, user2_teaches, user2_learns)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT DO NOTHING
		RETURNING ` + matchColumns

	saved, err := scanMatch(r.db.QueryRow(ctx, query,
		match.ID, match.User1ID, match.User2ID, match.Status,
		match.User1Accepted, match.User2Accepted, match.MatchScore,
		match.SkillMatch.User1Teaches, match.SkillMatch.User1Learns,
		match.SkillMatch.User2Teaches, match.SkillMatch.User2Learns,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, model.ErrConflict
		}
		return model.Match{}, err
	}

	return saved, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, model.ErrNotFound
		}
		return model.Match{}, err
	}

	return match, nil
}

func (r *MatchRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *MatchRepository) HasOpenMatch(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE LEAST(user1_id, user2_id) = LEAST($1::uuid, $2::uuid)
			  AND GREATEST(user1_id, user2_id) = GREATEST($1::uuid, $2::uuid)
			  AND status IN ('pending', 'active')
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// SetAccepted sets one acceptance flag and, when both flags are true and the
// match is still pending, transitions it to active, all in a single statement
// over a locked row. The returned bool reports whether this call performed
// the pending->active transition; under concurrent accepts from both parties
// exactly one call observes true.
func (r *MatchRepository) SetAccepted(ctx context.Context, id uuid.UUID, slot model.AcceptSlot) (model.Match, bool, error) {
	query := `
		WITH prev AS (
			SELECT status FROM matches WHERE id = $1 FOR UPDATE
		)
		UPDATE matches m
		SET user1_accepted = m.user1_accepted OR $2,
		    user2_accepted = m.user2_accepted OR $3,
		    status = CASE
				WHEN m.status = 'pending' AND (m.user1_accepted OR $2) AND (m.user2_accepted OR $3)
				THEN 'active'
				ELSE m.status
			END,
		    updated_at = NOW()
		FROM prev
		WHERE m.id = $1
		RETURNING m.id, m.user1_id, m.user2_id, m.status, m.user1_accepted, m.user2_accepted, m.match_score,
			m.user1_teaches, m.user1_learns, m.user2_teaches, m.user2_learns, m.created_at, m.updated_at,
			(prev.status = 'pending' AND m.status = 'active')`

	var m model.Match
	var transitioned bool
	err := r.db.QueryRow(ctx, query, id, slot == model.AcceptSlotUser1, slot == model.AcceptSlotUser2).Scan(
		&m.ID, &m.User1ID, &m.User2ID, &m.Status, &m.User1Accepted, &m.User2Accepted, &m.MatchScore,
		&m.SkillMatch.User1Teaches, &m.SkillMatch.User1Learns,
		&m.SkillMatch.User2Teaches, &m.SkillMatch.User2Learns,
		&m.CreatedAt, &m.UpdatedAt,
		&transitioned,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, false, model.ErrNotFound
		}
		return model.Match{}, false, err
	}

	return m, transitioned, nil
}

// Cancel transitions pending->cancelled. Cancelling an already-cancelled
// match is a no-op; an active or completed match is not revocable and
// reports model.ErrConflict.
func (r *MatchRepository) Cancel(ctx context.Context, id uuid.UUID) (model.Match, error) {
	query := `
		UPDATE matches
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'cancelled')
		RETURNING ` + matchColumns

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Match{}, err
	}

	// No row updated: either the match does not exist or its status forbids
	// cancellation.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return model.Match{}, getErr
	}
	return model.Match{}, model.ErrConflict
}

// Complete transitions active->completed. The returned bool reports whether
// this call performed the transition.
func (r *MatchRepository) Complete(ctx context.Context, id uuid.UUID) (model.Match, bool, error) {
	query := `
		UPDATE matches
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + matchColumns

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err == nil {
		return match, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Match{}, false, err
	}

	match, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return model.Match{}, false, getErr
	}
	return match, false, nil
}
