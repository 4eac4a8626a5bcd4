package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gohub-app/gohub/internal/infrastructure/config"
	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
	"github.com/gohub-app/gohub/internal/interfaces/http/routes"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// Router owns the gin engine and the container that backs it.
type Router struct {
	engine    *gin.Engine
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	if err := utils.InstallBindingValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	engine := gin.New()
	container, err := NewContainer(engine, db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{engine: engine, container: container}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.RequestLogger(c.log))
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.Metrics(c.metrics))

	r.engine.GET("/health", c.hdlrs.healthHandler.Health)
	r.engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))

	api := r.engine.Group("/api")
	api.Use(middleware.RateLimit(c.limiter, c.log))

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		ProfileHandler: c.hdlrs.profileHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		ApprovalHandler: c.hdlrs.approvalHandler,
		AdminKey:        middleware.AdminKey(c.cfg.Admin.Key, c.log),
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Container returns the wired components.
func (r *Router) Container() *Container {
	return r.container
}

// Shutdown releases the container's resources.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}

// gormPinger checks the pool behind a gorm handle.
type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) PingContext(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
