package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReactionService struct {
	mock.Mock
}

func (m *mockReactionService) React(movieID, actorID uint, kind domain.ReactionKind) (*domain.ReactionStatus, error) {
	args := m.Called(movieID, actorID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionStatus), args.Error(1)
}

func (m *mockReactionService) GetStatus(movieID, viewerID uint) (*domain.ReactionStatus, error) {
	args := m.Called(movieID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionStatus), args.Error(1)
}

func setupReactionRouter(svc *mockReactionService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("userID", userID)
		}
		c.Next()
	})

	h := NewReactionHandler(svc)
	r.POST("/movies/:id/like", h.LikeMovie)
	r.POST("/movies/:id/dislike", h.DislikeMovie)
	r.GET("/movies/:id/reactions", h.GetReactions)
	return r
}

func TestLikeMovie_Success(t *testing.T) {
	svc := new(mockReactionService)
	svc.On("React", uint(7), uint(2), domain.ReactionLike).
		Return(&domain.ReactionStatus{MovieID: 7, Likes: 1, UserLiked: true}, nil)

	r := setupReactionRouter(svc, 2)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/movies/7/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_liked":true`)
	svc.AssertExpectations(t)
}

func TestDislikeMovie_SelfReactionForbidden(t *testing.T) {
	svc := new(mockReactionService)
	svc.On("React", uint(7), uint(1), domain.ReactionDislike).
		Return(nil, common.ErrSelfReaction)

	r := setupReactionRouter(svc, 1)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/movies/7/dislike", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLikeMovie_NotFound(t *testing.T) {
	svc := new(mockReactionService)
	svc.On("React", uint(999), uint(2), domain.ReactionLike).
		Return(nil, common.ErrMovieNotFound)

	r := setupReactionRouter(svc, 2)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/movies/999/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeMovie_BadID(t *testing.T) {
	svc := new(mockReactionService)

	r := setupReactionRouter(svc, 2)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/movies/abc/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "React", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReactions_Anonymous(t *testing.T) {
	svc := new(mockReactionService)
	svc.On("GetStatus", uint(7), uint(0)).
		Return(&domain.ReactionStatus{MovieID: 7, Likes: 3, Dislikes: 1}, nil)

	r := setupReactionRouter(svc, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/movies/7/reactions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"likes":3`)
	svc.AssertExpectations(t)
}
