package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-server/internal/model"
	"github.com/skillswap/skillswap-server/internal/testutil"
)

// MockSweeper mocks the TargetSweeper interface
type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) RunSweep(ctx context.Context, targetUserID *uuid.UUID) (int, error) {
	args := m.Called(ctx, targetUserID)
	return args.Int(0), args.Error(1)
}

func TestProfile_Update_CompletedProfileTriggersSweep(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := model.User{ID: userID, Name: "Alice", Email: "alice@example.com"}

	userStore := &MockUserStore{}
	sweeper := &MockSweeper{}

	userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
	userStore.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.OfferSkill == "Guitar" && u.WantSkill == "Spanish" && u.ProfileCompleted
	})).Return(model.User{
		ID: userID, Name: "Alice", OfferSkill: "Guitar", WantSkill: "Spanish", ProfileCompleted: true,
	}, nil)
	sweeper.On("RunSweep", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
		return id != nil && *id == userID
	})).Return(2, nil)

	s := NewProfile(userStore, sweeper, testutil.MakeNoopLogger())

	got, err := s.Update(ctx, model.UpdateProfileParams{
		UserID:     userID,
		OfferSkill: "Guitar",
		OfferLevel: model.LevelAdvanced,
		WantSkill:  "Spanish",
		WantLevel:  model.LevelBeginner,
	})
	require.NoError(t, err)
	assert.True(t, got.ProfileCompleted)
	sweeper.AssertNumberOfCalls(t, "RunSweep", 1)
}

func TestProfile_Update_IncompleteProfileSkipsSweep(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := model.User{ID: userID, Name: "Bob"}

	userStore := &MockUserStore{}
	sweeper := &MockSweeper{}

	userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
	userStore.On("Update", mock.Anything, mock.Anything).Return(model.User{
		ID: userID, Name: "Bob", OfferSkill: "Chess", ProfileCompleted: false,
	}, nil)

	s := NewProfile(userStore, sweeper, testutil.MakeNoopLogger())

	got, err := s.Update(ctx, model.UpdateProfileParams{UserID: userID, OfferSkill: "Chess"})
	require.NoError(t, err)
	assert.False(t, got.ProfileCompleted)
	sweeper.AssertNotCalled(t, "RunSweep", mock.Anything, mock.Anything)
}

func TestProfile_Update_EmptyFieldsLeftUnchanged(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := model.User{
		ID: userID, Name: "Carol",
		OfferSkill: "Piano", OfferLevel: model.LevelAdvanced,
		WantSkill: "French", WantLevel: model.LevelBeginner,
		Timezone: "Europe/Paris", ProfileCompleted: true,
	}

	userStore := &MockUserStore{}
	sweeper := &MockSweeper{}

	userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
	userStore.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Name == "Carol" && u.OfferSkill == "Piano" && u.WantSkill == "French" &&
			u.Timezone == "America/New_York"
	})).Return(user, nil)
	sweeper.On("RunSweep", mock.Anything, mock.Anything).Return(0, nil)

	s := NewProfile(userStore, sweeper, testutil.MakeNoopLogger())

	_, err := s.Update(ctx, model.UpdateProfileParams{UserID: userID, Timezone: "America/New_York"})
	require.NoError(t, err)
}

func TestProfile_Update_UnknownLevel(t *testing.T) {
	ctx := context.Background()

	s := NewProfile(&MockUserStore{}, &MockSweeper{}, testutil.MakeNoopLogger())

	_, err := s.Update(ctx, model.UpdateProfileParams{UserID: uuid.New(), OfferLevel: "Expert"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Update(ctx, model.UpdateProfileParams{UserID: uuid.New(), WantLevel: "novice"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestProfile_Update_SweepFailureDoesNotFailUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := model.User{ID: userID, OfferSkill: "Go", WantSkill: "Rust", ProfileCompleted: true}

	userStore := &MockUserStore{}
	sweeper := &MockSweeper{}

	userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
	userStore.On("Update", mock.Anything, mock.Anything).Return(user, nil)
	sweeper.On("RunSweep", mock.Anything, mock.Anything).Return(0, errors.New("db down"))

	s := NewProfile(userStore, sweeper, testutil.MakeNoopLogger())

	got, err := s.Update(ctx, model.UpdateProfileParams{UserID: userID, Name: "Dave"})
	require.NoError(t, err)
	assert.Equal(t, userID, got.ID)
}

func TestProfile_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	userStore := &MockUserStore{}
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Name: "Eve"}, nil)

	s := NewProfile(userStore, &MockSweeper{}, testutil.MakeNoopLogger())

	got, err := s.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Eve", got.Name)
}

func TestProfile_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	userStore := &MockUserStore{}
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	s := NewProfile(userStore, &MockSweeper{}, testutil.MakeNoopLogger())

	_, err := s.Get(ctx, userID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
