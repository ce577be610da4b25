package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchStore defines persistence operations for matches.
//
// Create and the transition methods carry the atomicity guarantees of the
// engine: Create must reject a second open match for the same unordered pair,
// and SetAccepted must perform the flag update, the both-accepted check and
// the pending->active transition as a single atomic write.
type MatchStore interface {
	Create(ctx context.Context, match Match) (Match, error)
	GetByID(ctx context.Context, id uuid.UUID) (Match, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Match, error)
	HasOpenMatch(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	SetAccepted(ctx context.Context, id uuid.UUID, slot AcceptSlot) (Match, bool, error)
	Cancel(ctx context.Context, id uuid.UUID) (Match, error)
	Complete(ctx context.Context, id uuid.UUID) (Match, bool, error)
}

// MatchStatus is the lifecycle state of a match. Transitions are monotone:
// pending -> active -> completed, or pending -> cancelled. No other edges.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusActive    MatchStatus = "active"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// AcceptSlot identifies which side of a match is accepting.
type AcceptSlot int

const (
	AcceptSlotUser1 AcceptSlot = 1
	AcceptSlotUser2 AcceptSlot = 2
)

// SkillMatch is an immutable snapshot of the four skill strings at proposal
// time, recording why the match was proposed independent of later profile edits.
type SkillMatch struct {
	User1Teaches string
	User1Learns  string
	User2Teaches string
	User2Learns  string
}

// Match represents a proposed or active pairing between two users.
type Match struct {
	ID            uuid.UUID
	User1ID       uuid.UUID
	User2ID       uuid.UUID
	Status        MatchStatus
	User1Accepted bool
	User2Accepted bool
	MatchScore    float64
	SkillMatch    SkillMatch
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Classroom is populated for active matches when the caller asks for
	// session identifiers. It is not a column of the match row.
	Classroom *Classroom
}

// Involves reports whether the user is a party to the match.
func (m Match) Involves(userID uuid.UUID) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// SlotOf returns the accept slot of the user, or 0 if the user is not a party.
func (m Match) SlotOf(userID uuid.UUID) AcceptSlot {
	switch userID {
	case m.User1ID:
		return AcceptSlotUser1
	case m.User2ID:
		return AcceptSlotUser2
	}
	return 0
}

// Partner returns the other party of the match, or uuid.Nil if the user is
// not a party.
func (m Match) Partner(userID uuid.UUID) uuid.UUID {
	switch userID {
	case m.User1ID:
		return m.User2ID
	case m.User2ID:
		return m.User1ID
	}
	return uuid.Nil
}
