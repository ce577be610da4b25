package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap-server/internal/model"
)

var _ model.ClassroomStore = (*ClassroomRepository)(nil)

type ClassroomRepository struct {
	db *Connection
}

func NewClassroomRepository(db *Connection) *ClassroomRepository {
	return &ClassroomRepository{
		db: db,
	}
}

const classroomColumns = `id, match_id, video_call_room_id, whiteboard_session_id, created_at`

func scanClassroom(row pgx.Row) (model.Classroom, error) {
	var c model.Classroom
	err := row.Scan(&c.ID, &c.MatchID, &c.VideoCallRoomID, &c.WhiteboardSessionID, &c.CreatedAt)
	return c, err
}

// Create inserts a classroom for a match. The unique index on match_id means
// a second insert for the same match returns the existing row instead.
func (r *ClassroomRepository) Create(ctx context.Context, classroom model.Classroom) (model.Classroom, error) {
	query := `
		WITH ins AS (
			INSERT INTO classrooms (id, match_id, video_call_room_id, whiteboard_session_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (match_id) DO NOTHING
			RETURNING ` + classroomColumns + `
		)
		SELECT ` + classroomColumns + ` FROM ins
		UNION ALL
		SELECT ` + classroomColumns + ` FROM classrooms
		WHERE NOT EXISTS (SELECT 1 FROM ins) AND match_id = $2
		LIMIT 1`

	saved, err := scanClassroom(r.db.QueryRow(ctx, query,
		classroom.ID, classroom.MatchID, classroom.VideoCallRoomID, classroom.WhiteboardSessionID,
	))
	if err != nil {
		return model.Classroom{}, err
	}

	return saved, nil
}

func (r *ClassroomRepository) GetByMatchID(ctx context.Context, matchID uuid.UUID) (model.Classroom, error) {
	query := `SELECT ` + classroomColumns + ` FROM classrooms WHERE match_id = $1`

	classroom, err := scanClassroom(r.db.QueryRow(ctx, query, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Classroom{}, model.ErrNotFound
		}
		return model.Classroom{}, err
	}

	return classroom, nil
}
