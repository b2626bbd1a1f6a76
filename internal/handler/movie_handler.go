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

// MovieHandler handles HTTP requests for movie reviews
type MovieHandler struct {
	service service.MovieService
	covers  service.CoverService
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(service service.MovieService, covers service.CoverService) *MovieHandler {
	return &MovieHandler{service: service, covers: covers}
}

// ListMovies godoc
// @Summary      List movie reviews
// @Description  Lists movie reviews ordered by the requested filter. Unknown filters fall back to insertion order.
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        filter  query     string  false  "Sort key: date, published_date, likes, dislikes, by_current_user"
// @Param        author  query     int     false  "Restrict to movies by this author id"
// @Param        page    query     int     false  "Page number"  default(1)
// @Param        limit   query     int     false  "Items per page"  default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.MovieResponse}
// @Failure      500  {object}  common.APIResponse
// @Router       /movies [get]
func (h *MovieHandler) ListMovies(c *gin.Context) {
	filter := c.Query("filter")
	authorID := ginutil.QueryUint(c, "author")
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)
	viewerID := middleware.GetUserID(c)

	data, meta, err := h.service.ListMovies(filter, authorID, viewerID, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch movies", err)
		return
	}

	common.SuccessResponse(c, data, meta)
}

// GetMovie godoc
// @Summary      Get a movie review
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Movie ID"
// @Success      200  {object}  common.APIResponse{data=domain.MovieResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	data, err := h.service.GetMovie(id, middleware.GetUserID(c))
	if errors.Is(err, common.ErrMovieNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Movie not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch movie", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// CreateMovie godoc
// @Summary      Post a new movie review
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateMovieRequest  true  "Movie review"
// @Success      201  {object}  common.APIResponse{data=domain.MovieResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Router       /movies [post]
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	var req domain.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	authorID := middleware.GetUserID(c)
	data, err := h.service.CreateMovie(authorID, &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create movie", err)
		return
	}

	common.CreatedResponse(c, data)
}

// UpdateMovie godoc
// @Summary      Edit a movie review
// @Description  Author-only. Non-authors receive 403, unknown movies 404.
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                        true  "Movie ID"
// @Param        request  body  domain.UpdateMovieRequest  true  "Updated fields"
// @Success      200  {object}  common.APIResponse{data=domain.MovieResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	var req domain.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	data, err := h.service.UpdateMovie(id, middleware.GetUserID(c), &req)
	if err != nil {
		h.writeMovieError(c, "Failed to update movie", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// DeleteMovie godoc
// @Summary      Delete a movie review
// @Description  Author-only. Reactions cascade with the movie.
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Movie ID"
// @Success      200  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	if err := h.service.DeleteMovie(id, middleware.GetUserID(c)); err != nil {
		h.writeMovieError(c, "Failed to delete movie", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": id}, nil)
}

// UploadCover godoc
// @Summary      Upload a cover image
// @Description  Author-only multipart upload; replaces any existing cover.
// @Tags         movies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true  "Movie ID"
// @Param        cover  formData  file  true  "Cover image"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id}/cover [post]
func (h *MovieHandler) UploadCover(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing cover file", err)
		return
	}

	url, err := h.covers.UploadCover(c.Request.Context(), id, middleware.GetUserID(c), file)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid cover upload", err)
			return
		}
		if errors.Is(err, common.ErrStorageUnavailable) {
			common.ErrorResponse(c, http.StatusServiceUnavailable, "Cover storage not configured", err)
			return
		}
		h.writeMovieError(c, "Failed to upload cover", err)
		return
	}

	common.SuccessResponse(c, gin.H{"cover_url": url}, nil)
}

// RemoveCover godoc
// @Summary      Remove the cover image
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Movie ID"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /movies/{id}/cover [delete]
func (h *MovieHandler) RemoveCover(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid movie ID", err)
		return
	}

	if err := h.covers.RemoveCover(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		h.writeMovieError(c, "Failed to remove cover", err)
		return
	}

	common.SuccessResponse(c, gin.H{"removed": id}, nil)
}

// writeMovieError maps service errors to HTTP statuses: unknown movie is
// 404, a non-author acting on someone else's movie is 403.
func (h *MovieHandler) writeMovieError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, common.ErrMovieNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Movie not found", err)
	case errors.Is(err, common.ErrNotAuthor):
		common.ErrorResponse(c, http.StatusForbidden, "Only the author may modify this movie", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
