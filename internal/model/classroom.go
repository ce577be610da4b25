package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClassroomStore defines persistence operations for provisioned classrooms.
type ClassroomStore interface {
	Create(ctx context.Context, classroom Classroom) (Classroom, error)
	GetByMatchID(ctx context.Context, matchID uuid.UUID) (Classroom, error)
}

// SessionProvisioner provisions the live session for a match. It is invoked
// exactly once per match, on the pending->active transition; the caller owns
// that guarantee, the provisioner itself is not required to dedupe.
type SessionProvisioner interface {
	Provision(ctx context.Context, matchID uuid.UUID) (Classroom, error)
}

// Classroom holds the session identifiers provisioned for an active match.
// The real-time relay layer consumes these; the engine only stores them.
type Classroom struct {
	ID                  uuid.UUID
	MatchID             uuid.UUID
	VideoCallRoomID     string
	WhiteboardSessionID string
	CreatedAt           time.Time
}
