package service

import (
	"testing"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/movierama/movierama-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock ReactionRepository ---

type mockReactionRepo struct {
	mock.Mock
}

func (m *mockReactionRepo) Toggle(movieID, userID uint, kind domain.ReactionKind) (repository.ToggleOutcome, error) {
	args := m.Called(movieID, userID, kind)
	return args.Get(0).(repository.ToggleOutcome), args.Error(1)
}

func (m *mockReactionRepo) GetStatus(movieID, userID uint) (*domain.ReactionStatus, error) {
	args := m.Called(movieID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionStatus), args.Error(1)
}

func (m *mockReactionRepo) FindUserReactions(userID uint, movieIDs []uint) (map[uint]domain.ReactionKind, error) {
	args := m.Called(userID, movieIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]domain.ReactionKind), args.Error(1)
}

// --- Tests ---

func TestReact_FirstLike(t *testing.T) {
	repo := new(mockReactionRepo)
	svc := NewReactionService(repo, nil)

	repo.On("Toggle", uint(7), uint(2), domain.ReactionLike).
		Return(repository.OutcomeAdded, nil)
	repo.On("GetStatus", uint(7), uint(2)).
		Return(&domain.ReactionStatus{MovieID: 7, Likes: 1, UserLiked: true}, nil)

	status, err := svc.React(7, 2, domain.ReactionLike)

	assert.NoError(t, err)
	assert.Equal(t, 1, status.Likes)
	assert.Equal(t, 0, status.Dislikes)
	assert.True(t, status.UserLiked)
	assert.False(t, status.UserDisliked)
	repo.AssertExpectations(t)
}

func TestReact_ToggleOffRemovesReaction(t *testing.T) {
	repo := new(mockReactionRepo)
	svc := NewReactionService(repo, nil)

	repo.On("Toggle", uint(7), uint(2), domain.ReactionLike).
		Return(repository.OutcomeRemoved, nil)
	repo.On("GetStatus", uint(7), uint(2)).
		Return(&domain.ReactionStatus{MovieID: 7}, nil)

	status, err := svc.React(7, 2, domain.ReactionLike)

	assert.NoError(t, err)
	assert.Equal(t, 0, status.Likes)
	assert.False(t, status.UserLiked)
	repo.AssertExpectations(t)
}

func TestReact_SwitchLikeToDislike(t *testing.T) {
	repo := new(mockReactionRepo)
	svc := NewReactionService(repo, nil)

	repo.On("Toggle", uint(7), uint(2), domain.ReactionDislike).
		Return(repository.OutcomeSwitched, nil)
	repo.On("GetStatus", uint(7), uint(2)).
		Return(&domain.ReactionStatus{MovieID: 7, Dislikes: 1, UserDisliked: true}, nil)

	status, err := svc.React(7, 2, domain.ReactionDislike)

	assert.NoError(t, err)
	assert.Equal(t, 1, status.Dislikes)
	assert.True(t, status.UserDisliked)
	assert.False(t, status.UserLiked)
	repo.AssertExpectations(t)
}

func TestReact_AuthorCannotReactToOwnMovie(t *testing.T) {
	repo := new(mockReactionRepo)
	svc := NewReactionService(repo, nil)

	repo.On("Toggle", uint(7), uint(1), domain.ReactionLike).
		Return(repository.ToggleOutcome(""), common.ErrSelfReaction)

	status, err := svc.React(7, 1, domain.ReactionLike)

	assert.ErrorIs(t, err, common.ErrSelfReaction)
	assert.Nil(t, status)
	repo.AssertExpectations(t)
}

func TestReact_MovieNotFound(t *testing.T) {
	repo := new(mockReactionRepo)
	svc := NewReactionService(repo, nil)

	repo.On("Toggle", uint(999), uint(2), domain.ReactionDislike).
		Return(repository.ToggleOutcome(""), common.ErrMovieNotFound)

	status, err := svc.React(999, 2, domain.ReactionDislike)

	assert.ErrorIs(t, err, common.ErrMovieNotFound)
	assert.Nil(t, status)
	repo.AssertExpectations(t)
}

func TestGetStatus_AnonymousViewer(t *testing.T) {
	repo := new(mockReactionRepo)
	svc := NewReactionService(repo, nil)

	repo.On("GetStatus", uint(7), uint(0)).
		Return(&domain.ReactionStatus{MovieID: 7, Likes: 3, Dislikes: 1}, nil)

	status, err := svc.GetStatus(7, 0)

	assert.NoError(t, err)
	assert.Equal(t, 3, status.Likes)
	assert.False(t, status.UserLiked)
	assert.False(t, status.UserDisliked)
	repo.AssertExpectations(t)
}
