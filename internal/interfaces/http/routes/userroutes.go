package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/interfaces/http/handlers"
	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for the current-user routes.
type UserRouteConfig struct {
	ProfileHandler *handlers.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures routes that act on the caller's own account.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireSession())
	{
		users.GET("/profile", cfg.ProfileHandler.GetProfile)
		users.GET("/devices", cfg.ProfileHandler.ListDevices)
	}
}
