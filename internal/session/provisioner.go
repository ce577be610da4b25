// Package session provisions the live classroom for an activated match.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-server/internal/model"
)

var _ model.SessionProvisioner = (*ClassroomProvisioner)(nil)

// ClassroomProvisioner materializes a classroom record with fresh video room
// and whiteboard session identifiers. The real-time relay layer consumes the
// identifiers; this provisioner only mints and stores them.
type ClassroomProvisioner struct {
	classroomStore model.ClassroomStore
}

func NewClassroomProvisioner(classroomStore model.ClassroomStore) *ClassroomProvisioner {
	return &ClassroomProvisioner{
		classroomStore: classroomStore,
	}
}

func (p *ClassroomProvisioner) Provision(ctx context.Context, matchID uuid.UUID) (model.Classroom, error) {
	classroom := model.Classroom{
		ID:                  uuid.New(),
		MatchID:             matchID,
		VideoCallRoomID:     uuid.NewString(),
		WhiteboardSessionID: uuid.NewString(),
	}

	saved, err := p.classroomStore.Create(ctx, classroom)
	if err != nil {
		return model.Classroom{}, fmt.Errorf("failed to save classroom: %w", err)
	}

	return saved, nil
}
