package service

import (
	"testing"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock MovieRepository ---

type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) List(q domain.ListQuery) ([]*domain.Movie, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepo) FindByID(id uint) (*domain.Movie, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *mockMovieRepo) GetAuthorID(id uint) (uint, error) {
	args := m.Called(id)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockMovieRepo) Create(movie *domain.Movie) error {
	return m.Called(movie).Error(0)
}

func (m *mockMovieRepo) Update(id uint, movie *domain.Movie) error {
	return m.Called(id, movie).Error(0)
}

func (m *mockMovieRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockMovieRepo) SetCover(id uint, key, url string) error {
	return m.Called(id, key, url).Error(0)
}

func noReactions(repo *mockReactionRepo, userID uint) {
	repo.On("FindUserReactions", userID, mock.Anything).
		Return(map[uint]domain.ReactionKind{}, nil)
}

// --- Tests ---

func TestListMovies_DefaultPagination(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	expected := domain.ListQuery{Filter: domain.FilterDefault, Page: 1, Limit: 20}
	movieRepo.On("List", expected).Return([]*domain.Movie{}, int64(0), nil)
	noReactions(reactionRepo, uint(0))

	_, meta, err := svc.ListMovies("", 0, 0, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	movieRepo.AssertExpectations(t)
}

func TestListMovies_LimitCapped(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	expected := domain.ListQuery{Filter: domain.FilterLikes, Page: 2, Limit: 100}
	movieRepo.On("List", expected).Return([]*domain.Movie{}, int64(0), nil)
	noReactions(reactionRepo, uint(0))

	_, meta, err := svc.ListMovies("likes", 0, 0, 2, 500)

	assert.NoError(t, err)
	assert.Equal(t, 100, meta.Limit)
	movieRepo.AssertExpectations(t)
}

func TestListMovies_UnknownFilterFallsBack(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	expected := domain.ListQuery{Filter: domain.FilterDefault, Page: 1, Limit: 20}
	movieRepo.On("List", expected).Return([]*domain.Movie{}, int64(0), nil)
	noReactions(reactionRepo, uint(0))

	_, _, err := svc.ListMovies("bogus", 0, 0, 1, 20)

	assert.NoError(t, err)
	movieRepo.AssertExpectations(t)
}

func TestListMovies_ByCurrentUserAnonymousMatchesNothing(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movies, meta, err := svc.ListMovies("by_current_user", 0, 0, 1, 20)

	assert.NoError(t, err)
	assert.Empty(t, movies)
	assert.Equal(t, int64(0), meta.Total)
	movieRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestListMovies_ByCurrentUserUsesViewerID(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	expected := domain.ListQuery{Filter: domain.FilterByCurrentUser, AuthorID: 5, Page: 1, Limit: 20}
	movieRepo.On("List", expected).Return([]*domain.Movie{
		{ID: 1, AuthorID: 5, Title: "Own Movie"},
	}, int64(1), nil)
	noReactions(reactionRepo, uint(5))

	movies, _, err := svc.ListMovies("by_current_user", 0, 5, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.True(t, movies[0].CanEdit)
	assert.False(t, movies[0].CanLike)
	movieRepo.AssertExpectations(t)
}

func TestListMovies_ByCurrentUserExplicitAuthorWins(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	expected := domain.ListQuery{Filter: domain.FilterByCurrentUser, AuthorID: 5, Page: 1, Limit: 20}
	movieRepo.On("List", expected).Return([]*domain.Movie{}, int64(0), nil)
	noReactions(reactionRepo, uint(2))

	_, _, err := svc.ListMovies("by_current_user", 5, 2, 1, 20)

	assert.NoError(t, err)
	movieRepo.AssertExpectations(t)
}

func TestListMovies_ExplicitAuthorAppliesForAnonymous(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	expected := domain.ListQuery{Filter: domain.FilterByCurrentUser, AuthorID: 5, Page: 1, Limit: 20}
	movieRepo.On("List", expected).Return([]*domain.Movie{}, int64(0), nil)
	noReactions(reactionRepo, uint(0))

	_, _, err := svc.ListMovies("by_current_user", 5, 0, 1, 20)

	assert.NoError(t, err)
	movieRepo.AssertExpectations(t)
}

func TestListMovies_ViewerFlags(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movieRepo.On("List", mock.Anything).Return([]*domain.Movie{
		{ID: 1, AuthorID: 2, Title: "Mine"},
		{ID: 2, AuthorID: 9, Title: "Liked by me"},
		{ID: 3, AuthorID: 9, Title: "Untouched"},
	}, int64(3), nil)
	reactionRepo.On("FindUserReactions", uint(2), []uint{1, 2, 3}).
		Return(map[uint]domain.ReactionKind{2: domain.ReactionLike}, nil)

	movies, _, err := svc.ListMovies("date", 0, 2, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, movies, 3)

	// own movie: editable, no reaction controls
	assert.True(t, movies[0].CanEdit)
	assert.True(t, movies[0].CanDelete)
	assert.False(t, movies[0].CanLike)

	// someone else's, already liked
	assert.True(t, movies[1].CanLike)
	assert.True(t, movies[1].UserLiked)
	assert.False(t, movies[1].UserDisliked)

	// someone else's, no reaction yet
	assert.True(t, movies[2].CanLike)
	assert.False(t, movies[2].UserLiked)
}

func TestUpdateMovie_NotAuthorForbidden(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movieRepo.On("GetAuthorID", uint(7)).Return(uint(1), nil)

	_, err := svc.UpdateMovie(7, 2, &domain.UpdateMovieRequest{Title: "New"})

	assert.ErrorIs(t, err, common.ErrNotAuthor)
	movieRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateMovie_MissingMovieIsNotFoundBeforeForbidden(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movieRepo.On("GetAuthorID", uint(999)).Return(uint(0), common.ErrMovieNotFound)

	_, err := svc.UpdateMovie(999, 2, &domain.UpdateMovieRequest{Title: "New"})

	assert.ErrorIs(t, err, common.ErrMovieNotFound)
}

func TestDeleteMovie_AuthorSucceeds(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movieRepo.On("GetAuthorID", uint(7)).Return(uint(2), nil)
	movieRepo.On("Delete", uint(7)).Return(nil)

	err := svc.DeleteMovie(7, 2)

	assert.NoError(t, err)
	movieRepo.AssertExpectations(t)
}

func TestDeleteMovie_NotAuthorForbidden(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movieRepo.On("GetAuthorID", uint(7)).Return(uint(1), nil)

	err := svc.DeleteMovie(7, 2)

	assert.ErrorIs(t, err, common.ErrNotAuthor)
	movieRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCreateMovie_AuthorGetsEditFlags(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, nil)

	movieRepo.On("Create", mock.MatchedBy(func(m *domain.Movie) bool {
		return m.AuthorID == 2 && m.Title == "Alien" && m.Year == 1979
	})).Return(nil)

	resp, err := svc.CreateMovie(2, &domain.CreateMovieRequest{
		Title:       "Alien",
		Description: "In space no one can hear you scream.",
		Genre:       "sci-fi",
		Year:        1979,
	})

	assert.NoError(t, err)
	assert.True(t, resp.CanEdit)
	assert.True(t, resp.CanDelete)
	assert.False(t, resp.CanLike)
	movieRepo.AssertExpectations(t)
}

func TestGetMovie_AnonymousServedFromCache(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	svc := NewMovieService(movieRepo, reactionRepo, newMemoryCache())

	movieRepo.On("FindByID", uint(7)).
		Return(&domain.Movie{ID: 7, AuthorID: 2, Title: "Stalker"}, nil).Once()
	noReactions(reactionRepo, uint(0))

	first, err := svc.GetMovie(7, 0)
	assert.NoError(t, err)

	second, err := svc.GetMovie(7, 0)
	assert.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)

	movieRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestGetMovie_AuthenticatedViewerBypassesCache(t *testing.T) {
	movieRepo := new(mockMovieRepo)
	reactionRepo := new(mockReactionRepo)
	cache := newMemoryCache()
	svc := NewMovieService(movieRepo, reactionRepo, cache)

	movieRepo.On("FindByID", uint(7)).
		Return(&domain.Movie{ID: 7, AuthorID: 2, Title: "Stalker"}, nil).Twice()
	noReactions(reactionRepo, uint(5))

	_, err := svc.GetMovie(7, 5)
	assert.NoError(t, err)
	_, err = svc.GetMovie(7, 5)
	assert.NoError(t, err)

	movieRepo.AssertNumberOfCalls(t, "FindByID", 2)
	_, cached := cache.store["movie:7"]
	assert.False(t, cached)
}
