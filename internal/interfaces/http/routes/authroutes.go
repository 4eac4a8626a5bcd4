package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/interfaces/http/handlers"
	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)

		// Logout accepts the token of an evicted session so that device can
		// still sign itself out, but only itself.
		auth.POST("/logout", cfg.AuthMiddleware.RequireToken(), cfg.AuthHandler.Logout)
		auth.GET("/validate", cfg.AuthMiddleware.RequireSession(), cfg.AuthHandler.Validate)
	}
}
