package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/model"
)

// MatchService defines the match lifecycle operations.
type MatchService interface {
	Accept(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error)
	Decline(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error)
	Get(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Match, error)
}

// SweepService triggers matching sweeps.
type SweepService interface {
	RunSweep(ctx context.Context, targetUserID *uuid.UUID) (int, error)
}

// Match handles HTTP endpoints for the match lifecycle.
type Match struct {
	matchService MatchService
	sweepService SweepService
	logger       *logger.Logger
}

func NewMatch(matchService MatchService, sweepService SweepService, logger *logger.Logger) *Match {
	return &Match{
		matchService: matchService,
		sweepService: sweepService,
		logger:       logger,
	}
}

type skillMatchResponse struct {
	User1Teaches string `json:"user1_teaches"`
	User1Learns  string `json:"user1_learns"`
	User2Teaches string `json:"user2_teaches"`
	User2Learns  string `json:"user2_learns"`
}

type classroomResponse struct {
	VideoCallRoomID     string `json:"video_call_room_id"`
	WhiteboardSessionID string `json:"whiteboard_session_id"`
}

type matchResponse struct {
	ID            uuid.UUID          `json:"id"`
	User1ID       uuid.UUID          `json:"user1_id"`
	User2ID       uuid.UUID          `json:"user2_id"`
	Status        string             `json:"status"`
	User1Accepted bool               `json:"user1_accepted"`
	User2Accepted bool               `json:"user2_accepted"`
	MatchScore    float64            `json:"match_score"`
	SkillMatch    skillMatchResponse `json:"skill_match"`
	Classroom     *classroomResponse `json:"classroom,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toMatchResponse(m model.Match) matchResponse {
	resp := matchResponse{
		ID:            m.ID,
		User1ID:       m.User1ID,
		User2ID:       m.User2ID,
		Status:        string(m.Status),
		User1Accepted: m.User1Accepted,
		User2Accepted: m.User2Accepted,
		MatchScore:    m.MatchScore,
		SkillMatch: skillMatchResponse{
			User1Teaches: m.SkillMatch.User1Teaches,
			User1Learns:  m.SkillMatch.User1Learns,
			User2Teaches: m.SkillMatch.User2Teaches,
			User2Learns:  m.SkillMatch.User2Learns,
		},
		CreatedAt: m.CreatedAt,
	}
	if m.Classroom != nil {
		resp.Classroom = &classroomResponse{
			VideoCallRoomID:     m.Classroom.VideoCallRoomID,
			WhiteboardSessionID: m.Classroom.WhiteboardSessionID,
		}
	}
	return resp
}

type actorRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// RunSweep triggers a sweep, optionally targeted at a single user.
func (h *Match) RunSweep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID *uuid.UUID `json:"user_id"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
			return
		}
	}

	created, err := h.sweepService.RunSweep(r.Context(), req.UserID)
	if err != nil {
		h.logger.Error("sweep request failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"matches_created": created})
}

// ListMine returns the requesting user's matches.
func (h *Match) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid user_id", model.ErrValidation))
		return
	}

	matches, err := h.matchService.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list matches", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}

	resp := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, toMatchResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single match with session identifiers when active.
func (h *Match) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(mux.Vars(r)["matchID"])
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid match id", model.ErrValidation))
		return
	}
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid user_id", model.ErrValidation))
		return
	}

	match, err := h.matchService.Get(r.Context(), matchID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(match))
}

// Accept records the requesting user's acceptance of a match.
func (h *Match) Accept(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(mux.Vars(r)["matchID"])
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid match id", model.ErrValidation))
		return
	}

	var req actorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == uuid.Nil {
		writeError(w, fmt.Errorf("%w: user_id is required", model.ErrValidation))
		return
	}

	match, err := h.matchService.Accept(r.Context(), matchID, req.UserID)
	if err != nil {
		h.logger.Error("accept failed", "match_id", matchID, "user_id", req.UserID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(match))
}

// Decline cancels a pending match.
func (h *Match) Decline(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(mux.Vars(r)["matchID"])
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid match id", model.ErrValidation))
		return
	}

	var req actorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == uuid.Nil {
		writeError(w, fmt.Errorf("%w: user_id is required", model.ErrValidation))
		return
	}

	match, err := h.matchService.Decline(r.Context(), matchID, req.UserID)
	if err != nil {
		h.logger.Error("decline failed", "match_id", matchID, "user_id", req.UserID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(match))
}
