package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/movierama/movierama-backend/internal/middleware"
	"github.com/movierama/movierama-backend/internal/service"
	"github.com/movierama/movierama-backend/pkg/ginutil"
)

// ReactionHandler handles like/dislike requests
type ReactionHandler struct {
	service service.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(service service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

// LikeMovie godoc
// @Summary      Toggle a like on a movie
// @Description  Likes the movie, removes an existing like, or switches a dislike to a like. Authors may not react to their own movies.
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Movie ID"
// @Success      200  {object}  common.APIResponse{data=domain.ReactionStatus}
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id}/like [post]
func (h *ReactionHandler) LikeMovie(c *gin.Context) {
	h.react(c, domain.ReactionLike)
}

// DislikeMovie godoc
// @Summary      Toggle a dislike on a movie
// @Description  Dislikes the movie, removes an existing dislike, or switches a like to a dislike. Authors may not react to their own movies.
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Movie ID"
// @Success      200  {object}  common.APIResponse{data=domain.ReactionStatus}
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id}/dislike [post]
func (h *ReactionHandler) DislikeMovie(c *gin.Context) {
	h.react(c, domain.ReactionDislike)
}

func (h *ReactionHandler) react(c *gin.Context, kind domain.ReactionKind) {
	movieID, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	status, err := h.service.React(movieID, middleware.GetUserID(c), kind)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMovieNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Movie not found", err)
		case errors.Is(err, common.ErrSelfReaction):
			common.ErrorResponse(c, http.StatusForbidden, "You cannot react to your own movie", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update reaction", err)
		}
		return
	}

	common.SuccessResponse(c, status, nil)
}

// GetReactions godoc
// @Summary      Get reaction counts for a movie
// @Description  Returns like/dislike totals and, for authenticated callers, their own reaction.
// @Tags         reactions
// @Produce      json
// @Param        id  path  int  true  "Movie ID"
// @Success      200  {object}  common.APIResponse{data=domain.ReactionStatus}
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id}/reactions [get]
func (h *ReactionHandler) GetReactions(c *gin.Context) {
	movieID, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	status, err := h.service.GetStatus(movieID, middleware.GetUserID(c))
	if errors.Is(err, common.ErrMovieNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Movie not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch reactions", err)
		return
	}

	common.SuccessResponse(c, status, nil)
}
