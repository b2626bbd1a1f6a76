package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/movierama/movierama-backend/internal/service"
)

// OAuthHandler handles social login flows
type OAuthHandler struct {
	service *service.OAuthService
}

// NewOAuthHandler creates a new OAuthHandler
func NewOAuthHandler(service *service.OAuthService) *OAuthHandler {
	return &OAuthHandler{service: service}
}

// GetAuthURL godoc
// @Summary      Get the provider authorization URL
// @Tags         oauth
// @Produce      json
// @Param        provider  path  string  true  "Provider: facebook or github"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /oauth/{provider}/url [get]
func (h *OAuthHandler) GetAuthURL(c *gin.Context) {
	provider := domain.OAuthProvider(c.Param("provider"))
	if !provider.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "Unsupported provider", common.ErrInvalidInput)
		return
	}

	state := uuid.NewString()
	url, err := h.service.GetAuthURL(c.Request.Context(), provider, state)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Provider not configured", err)
		return
	}

	common.SuccessResponse(c, gin.H{"auth_url": url, "state": state}, nil)
}

// Callback godoc
// @Summary      Complete a social login
// @Description  Exchanges the authorization code, linking or creating a local account, and returns a token pair.
// @Tags         oauth
// @Produce      json
// @Param        provider  path   string  true  "Provider: facebook or github"
// @Param        code      query  string  true  "Authorization code"
// @Param        state     query  string  true  "State nonce from the auth URL"
// @Success      200  {object}  common.APIResponse{data=domain.OAuthLoginResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /oauth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider := domain.OAuthProvider(c.Param("provider"))
	if !provider.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "Unsupported provider", common.ErrInvalidInput)
		return
	}

	code := c.Query("code")
	if code == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing authorization code", common.ErrInvalidInput)
		return
	}

	state := c.Query("state")
	if state == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing state", common.ErrInvalidInput)
		return
	}

	resp, err := h.service.HandleCallback(c.Request.Context(), provider, code, state)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "Social login failed", err)
			return
		}
		common.ErrorResponse(c, http.StatusBadGateway, "Provider request failed", err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}
