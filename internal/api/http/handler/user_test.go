package handler

import (
	"bytes"
	"context"
	"encoding/json"
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

// MockProfileService mocks the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, params model.UpdateProfileParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func newUserRouter(svc ProfileService) *mux.Router {
	h := NewUser(svc, testutil.MakeNoopLogger())
	r := mux.NewRouter()
	r.HandleFunc("/api/users/{userID}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userID}/profile", h.UpdateProfile).Methods(http.MethodPut)
	return r
}

func TestUserHandler_Get(t *testing.T) {
	userID := uuid.New()
	user := model.User{
		ID:               userID,
		Name:             "Alice",
		OfferSkill:       "Guitar",
		OfferLevel:       model.LevelAdvanced,
		WantSkill:        "Spanish",
		WantLevel:        model.LevelBeginner,
		ProfileCompleted: true,
		TrustScore:       4.33,
		TotalReviews:     3,
	}

	svc := &MockProfileService{}
	svc.On("Get", mock.Anything, userID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()

	newUserRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, 4.33, resp.TrustScore)
	assert.Equal(t, 3, resp.TotalReviews)
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	userID := uuid.New()

	svc := &MockProfileService{}
	svc.On("Get", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()

	newUserRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	updated := model.User{
		ID:               userID,
		OfferSkill:       "Guitar",
		WantSkill:        "Spanish",
		ProfileCompleted: true,
	}

	svc := &MockProfileService{}
	svc.On("Update", mock.Anything, mock.MatchedBy(func(p model.UpdateProfileParams) bool {
		return p.UserID == userID && p.OfferSkill == "Guitar" && p.WantSkill == "Spanish" &&
			p.OfferLevel == model.LevelAdvanced
	})).Return(updated, nil)

	body, _ := json.Marshal(map[string]string{
		"offer_skill": "Guitar",
		"offer_level": "Advanced",
		"want_skill":  "Spanish",
		"want_level":  "Beginner",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID.String()+"/profile", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newUserRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.ProfileCompleted)
}

func TestUserHandler_UpdateProfile_UnknownLevel(t *testing.T) {
	userID := uuid.New()

	svc := &MockProfileService{}
	svc.On("Update", mock.Anything, mock.Anything).
		Return(model.User{}, model.ErrValidation)

	body, _ := json.Marshal(map[string]string{"offer_level": "Expert"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID.String()+"/profile", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newUserRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_UpdateProfile_InvalidID(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"name": "Bob"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/abc/profile", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newUserRouter(&MockProfileService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
