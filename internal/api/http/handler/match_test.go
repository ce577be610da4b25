package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-server/internal/model"
	"github.com/skillswap/skillswap-server/internal/testutil"
)

// MockMatchService mocks the MatchService interface
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) Accept(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	args := m.Called(ctx, matchID, userID)
	return args.Get(0).(model.Match), args.Error(1)
}

func (m *MockMatchService) Decline(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	args := m.Called(ctx, matchID, userID)
	return args.Get(0).(model.Match), args.Error(1)
}

func (m *MockMatchService) Get(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	args := m.Called(ctx, matchID, userID)
	return args.Get(0).(model.Match), args.Error(1)
}

func (m *MockMatchService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Match, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Match), args.Error(1)
}

// MockSweepService mocks the SweepService interface
type MockSweepService struct {
	mock.Mock
}

func (m *MockSweepService) RunSweep(ctx context.Context, targetUserID *uuid.UUID) (int, error) {
	args := m.Called(ctx, targetUserID)
	return args.Int(0), args.Error(1)
}

func newMatchRouter(matchService MatchService, sweepService SweepService) *mux.Router {
	h := NewMatch(matchService, sweepService, testutil.MakeNoopLogger())
	r := mux.NewRouter()
	r.HandleFunc("/api/matches/run-sweep", h.RunSweep).Methods(http.MethodPost)
	r.HandleFunc("/api/matches/my-matches", h.ListMine).Methods(http.MethodGet)
	r.HandleFunc("/api/matches/{matchID}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/matches/{matchID}/accept", h.Accept).Methods(http.MethodPost)
	r.HandleFunc("/api/matches/{matchID}/decline", h.Decline).Methods(http.MethodPost)
	return r
}

func TestMatchHandler_Accept(t *testing.T) {
	matchID := uuid.New()
	userID := uuid.New()
	active := model.Match{
		ID:      matchID,
		User1ID: userID,
		User2ID: uuid.New(),
		Status:  model.MatchStatusActive,
		Classroom: &model.Classroom{
			VideoCallRoomID:     "room-1",
			WhiteboardSessionID: "board-1",
		},
	}

	svc := &MockMatchService{}
	svc.On("Accept", mock.Anything, matchID, userID).Return(active, nil)

	body, _ := json.Marshal(map[string]string{"user_id": userID.String()})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/matches/%s/accept", matchID), bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newMatchRouter(svc, &MockSweepService{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, resp.Classroom)
	assert.Equal(t, "room-1", resp.Classroom.VideoCallRoomID)
}

func TestMatchHandler_Accept_MissingUserID(t *testing.T) {
	svc := &MockMatchService{}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/matches/%s/accept", uuid.New()), bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	newMatchRouter(svc, &MockSweepService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchHandler_Accept_Stranger(t *testing.T) {
	matchID := uuid.New()
	userID := uuid.New()

	svc := &MockMatchService{}
	svc.On("Accept", mock.Anything, matchID, userID).Return(model.Match{}, model.ErrUnauthorized)

	body, _ := json.Marshal(map[string]string{"user_id": userID.String()})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/matches/%s/accept", matchID), bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newMatchRouter(svc, &MockSweepService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMatchHandler_Decline_ActiveConflict(t *testing.T) {
	matchID := uuid.New()
	userID := uuid.New()

	svc := &MockMatchService{}
	svc.On("Decline", mock.Anything, matchID, userID).
		Return(model.Match{}, fmt.Errorf("%w: match is no longer pending", model.ErrConflict))

	body, _ := json.Marshal(map[string]string{"user_id": userID.String()})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/matches/%s/decline", matchID), bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newMatchRouter(svc, &MockSweepService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMatchHandler_Get_NotFound(t *testing.T) {
	matchID := uuid.New()
	userID := uuid.New()

	svc := &MockMatchService{}
	svc.On("Get", mock.Anything, matchID, userID).Return(model.Match{}, model.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/matches/%s?user_id=%s", matchID, userID), nil)
	rec := httptest.NewRecorder()

	newMatchRouter(svc, &MockSweepService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchHandler_ListMine(t *testing.T) {
	userID := uuid.New()
	matches := []model.Match{
		{ID: uuid.New(), User1ID: userID, User2ID: uuid.New(), Status: model.MatchStatusPending},
		{ID: uuid.New(), User1ID: uuid.New(), User2ID: userID, Status: model.MatchStatusActive},
	}

	svc := &MockMatchService{}
	svc.On("ListForUser", mock.Anything, userID).Return(matches, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/matches/my-matches?user_id="+userID.String(), nil)
	rec := httptest.NewRecorder()

	newMatchRouter(svc, &MockSweepService{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestMatchHandler_ListMine_InvalidUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/matches/my-matches?user_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newMatchRouter(&MockMatchService{}, &MockSweepService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchHandler_RunSweep_Full(t *testing.T) {
	sweep := &MockSweepService{}
	sweep.On("RunSweep", mock.Anything, (*uuid.UUID)(nil)).Return(4, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/matches/run-sweep", nil)
	rec := httptest.NewRecorder()

	newMatchRouter(&MockMatchService{}, sweep).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp["matches_created"])
}

func TestMatchHandler_RunSweep_Targeted(t *testing.T) {
	userID := uuid.New()

	sweep := &MockSweepService{}
	sweep.On("RunSweep", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
		return id != nil && *id == userID
	})).Return(1, nil)

	body, _ := json.Marshal(map[string]string{"user_id": userID.String()})
	req := httptest.NewRequest(http.MethodPost, "/api/matches/run-sweep", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newMatchRouter(&MockMatchService{}, sweep).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	sweep.AssertExpectations(t)
}
