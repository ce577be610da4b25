package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/model"
)

// Match owns the lifecycle transitions of match records: the dual-acceptance
// path into an active session and the decline path into cancellation.
type Match struct {
	matchStore     model.MatchStore
	classroomStore model.ClassroomStore
	provisioner    model.SessionProvisioner
	logger         *logger.Logger
}

func NewMatch(
	matchStore model.MatchStore,
	classroomStore model.ClassroomStore,
	provisioner model.SessionProvisioner,
	logger *logger.Logger,
) *Match {
	return &Match{
		matchStore:     matchStore,
		classroomStore: classroomStore,
		provisioner:    provisioner,
		logger:         logger,
	}
}

// Accept records the requesting user's acceptance. Setting an already-true
// flag is a no-op. When the update leaves both flags true on a pending match,
// the store performs the pending->active transition atomically and reports it
// to exactly one caller, which then provisions the session exactly once.
func (s *Match) Accept(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return model.Match{}, fmt.Errorf("failed to get match: %w", err)
	}

	slot := match.SlotOf(userID)
	if slot == 0 {
		return model.Match{}, model.ErrUnauthorized
	}

	updated, transitioned, err := s.matchStore.SetAccepted(ctx, matchID, slot)
	if err != nil {
		return model.Match{}, fmt.Errorf("failed to set acceptance: %w", err)
	}

	if transitioned {
		classroom, err := s.provisioner.Provision(ctx, matchID)
		if err != nil {
			return model.Match{}, fmt.Errorf("failed to provision session: %w", err)
		}
		s.logger.Info("match activated",
			"match_id", matchID, "video_room", classroom.VideoCallRoomID)
		updated.Classroom = &classroom
		return updated, nil
	}

	return s.attachClassroom(ctx, updated), nil
}

// Decline cancels a pending match. Declining an already-cancelled match is a
// no-op; a match that has reached active is not revocable and reports a
// conflict.
func (s *Match) Decline(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return model.Match{}, fmt.Errorf("failed to get match: %w", err)
	}

	if !match.Involves(userID) {
		return model.Match{}, model.ErrUnauthorized
	}

	cancelled, err := s.matchStore.Cancel(ctx, matchID)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.Match{}, fmt.Errorf("%w: match is no longer pending", model.ErrConflict)
		}
		return model.Match{}, fmt.Errorf("failed to cancel match: %w", err)
	}

	return cancelled, nil
}

// Get returns a match with its classroom identifiers when active. The
// requester must be a party to the match.
func (s *Match) Get(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return model.Match{}, fmt.Errorf("failed to get match: %w", err)
	}

	if !match.Involves(userID) {
		return model.Match{}, model.ErrUnauthorized
	}

	return s.attachClassroom(ctx, match), nil
}

// ListForUser returns every match the user is a party to, newest first.
func (s *Match) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Match, error) {
	matches, err := s.matchStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

func (s *Match) attachClassroom(ctx context.Context, match model.Match) model.Match {
	if match.Status != model.MatchStatusActive && match.Status != model.MatchStatusCompleted {
		return match
	}

	classroom, err := s.classroomStore.GetByMatchID(ctx, match.ID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("failed to load classroom", "match_id", match.ID, "error", err)
		}
		return match
	}

	match.Classroom = &classroom
	return match
}
