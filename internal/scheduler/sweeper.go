// Package scheduler materializes match proposals by sweeping the user
// population through the scoring functions.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/matching"
	"github.com/skillswap/skillswap-server/internal/model"
)

// DefaultTopMatches is how many proposals one sweep creates per user.
const DefaultTopMatches = 3

// Sweeper scores candidate pairs and creates pending matches for the best
// ones. It holds no state between runs; the duplicate guard lives in the
// match store.
type Sweeper struct {
	userStore  model.UserStore
	matchStore model.MatchStore
	topK       int
	logger     *logger.Logger
}

func NewSweeper(userStore model.UserStore, matchStore model.MatchStore, topK int, logger *logger.Logger) *Sweeper {
	if topK <= 0 {
		topK = DefaultTopMatches
	}
	return &Sweeper{
		userStore:  userStore,
		matchStore: matchStore,
		topK:       topK,
		logger:     logger,
	}
}

// RunSweep sweeps either the single target user against the full population,
// or every user with a completed profile. It returns the number of matches
// created. A failure for one user is logged and skipped, never aborting the
// rest of the sweep; context cancellation between users stops the sweep and
// leaves already-created matches intact.
func (s *Sweeper) RunSweep(ctx context.Context, targetUserID *uuid.UUID) (int, error) {
	population, err := s.userStore.ListCompleted(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list candidate population: %w", err)
	}

	users := population
	if targetUserID != nil {
		user, err := s.userStore.GetByID(ctx, *targetUserID)
		if err != nil {
			return 0, fmt.Errorf("failed to get target user: %w", err)
		}
		users = []model.User{user}
	}

	var created, failed int
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		n, err := s.sweepUser(ctx, user, population)
		created += n
		if err != nil {
			failed++
			s.logger.Error("sweep failed for user", "user_id", user.ID, "error", err)
		}
	}

	if failed > 0 {
		s.logger.Info("sweep finished with per-user failures", "failed", failed, "created", created)
	}

	return created, nil
}

type scoredCandidate struct {
	user  model.User
	score float64
}

// sweepUser scans the population keeping only a bounded top-k working set,
// then creates pending matches for the survivors. The conditional insert in
// the store re-validates the duplicate guard, so losing a race to a
// concurrent sweep only skips that pair.
func (s *Sweeper) sweepUser(ctx context.Context, user model.User, population []model.User) (int, error) {
	if !user.ProfileCompleted {
		return 0, nil
	}

	var top []scoredCandidate
	for _, candidate := range population {
		if candidate.ID == user.ID || !candidate.ProfileCompleted {
			continue
		}

		open, err := s.matchStore.HasOpenMatch(ctx, user.ID, candidate.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to check open match: %w", err)
		}
		if open {
			continue
		}

		breakdown, ok := matching.Score(user, candidate)
		if !ok {
			continue
		}

		top = insertRanked(top, scoredCandidate{user: candidate, score: breakdown.Combined}, s.topK)
	}

	var created int
	for _, cand := range top {
		match := model.Match{
			ID:         uuid.New(),
			User1ID:    user.ID,
			User2ID:    cand.user.ID,
			Status:     model.MatchStatusPending,
			MatchScore: cand.score,
			SkillMatch: model.SkillMatch{
				User1Teaches: user.OfferSkill,
				User1Learns:  user.WantSkill,
				User2Teaches: cand.user.OfferSkill,
				User2Learns:  cand.user.WantSkill,
			},
		}

		if _, err := s.matchStore.Create(ctx, match); err != nil {
			if errors.Is(err, model.ErrConflict) {
				// A concurrent sweep created an open match for this pair first.
				continue
			}
			return created, fmt.Errorf("failed to create match: %w", err)
		}
		created++
	}

	return created, nil
}

// insertRanked keeps ranked sorted descending with at most k entries.
// Equal scores keep encounter order: a new candidate is placed after
// existing candidates with the same score.
func insertRanked(ranked []scoredCandidate, c scoredCandidate, k int) []scoredCandidate {
	pos := len(ranked)
	for i := range ranked {
		if c.score > ranked[i].score {
			pos = i
			break
		}
	}

	if pos >= k {
		return ranked
	}

	ranked = append(ranked, scoredCandidate{})
	copy(ranked[pos+1:], ranked[pos:])
	ranked[pos] = c

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
