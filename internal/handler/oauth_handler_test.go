package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/movierama/movierama-backend/internal/service"
	"github.com/stretchr/testify/assert"
)

func setupOAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOAuthHandler(service.NewOAuthService(nil, nil, nil, nil))

	router := gin.New()
	router.GET("/oauth/:provider/url", h.GetAuthURL)
	router.GET("/oauth/:provider/callback", h.Callback)
	return router
}

func TestGetAuthURL_UnsupportedProvider(t *testing.T) {
	router := setupOAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/myspace/url", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallback_UnsupportedProvider(t *testing.T) {
	router := setupOAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/myspace/callback?code=abc&state=xyz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallback_MissingCode(t *testing.T) {
	router := setupOAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/github/callback?state=xyz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallback_MissingState(t *testing.T) {
	router := setupOAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/github/callback?code=abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
