package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/interfaces/http/handlers"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	ApprovalHandler *handlers.ApprovalHandler
	AdminKey        gin.HandlerFunc
}

// SetupAdminRoutes configures the allow-list management routes.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	approvals := api.Group("/admin/approvals")
	approvals.Use(cfg.AdminKey)
	{
		approvals.GET("", cfg.ApprovalHandler.List)
		approvals.POST("", cfg.ApprovalHandler.Add)
		approvals.POST("/bulk", cfg.ApprovalHandler.BulkAdd)
		approvals.PUT("/:number/payment", cfg.ApprovalHandler.MarkPaid)
	}
}
