package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/movierama/movierama-backend/internal/handler"
	"github.com/movierama/movierama-backend/internal/middleware"
	"github.com/movierama/movierama-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	movieHandler *handler.MovieHandler,
	reactionHandler *handler.ReactionHandler,
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// Social login
	oauth := api.Group("/oauth")
	oauth.GET("/:provider/url", oauthHandler.GetAuthURL)
	oauth.GET("/:provider/callback", oauthHandler.Callback)

	// Movies: reads are public but pick up viewer identity when a token
	// is present, so listings can carry per-viewer flags.
	movies := api.Group("/movies")
	movies.GET("", middleware.OptionalJWTAuth(jwtManager), movieHandler.ListMovies)
	movies.GET("/:id", middleware.OptionalJWTAuth(jwtManager), movieHandler.GetMovie)
	movies.GET("/:id/reactions", middleware.OptionalJWTAuth(jwtManager), reactionHandler.GetReactions)

	movies.POST("", middleware.JWTAuth(jwtManager), movieHandler.CreateMovie)
	movies.PUT("/:id", middleware.JWTAuth(jwtManager), movieHandler.UpdateMovie)
	movies.DELETE("/:id", middleware.JWTAuth(jwtManager), movieHandler.DeleteMovie)

	movies.POST("/:id/cover", middleware.JWTAuth(jwtManager), movieHandler.UploadCover)
	movies.DELETE("/:id/cover", middleware.JWTAuth(jwtManager), movieHandler.RemoveCover)

	// Reactions (auth required)
	movies.POST("/:id/like", middleware.JWTAuth(jwtManager), reactionHandler.LikeMovie)
	movies.POST("/:id/dislike", middleware.JWTAuth(jwtManager), reactionHandler.DislikeMovie)
}
