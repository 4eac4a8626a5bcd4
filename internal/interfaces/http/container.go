package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	approvalApp "github.com/gohub-app/gohub/internal/application/approval"
	userApp "github.com/gohub-app/gohub/internal/application/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/infrastructure/config"
	"github.com/gohub-app/gohub/internal/infrastructure/metrics"
	"github.com/gohub-app/gohub/internal/infrastructure/ratelimit"
	"github.com/gohub-app/gohub/internal/infrastructure/scheduler"
	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// Container holds the infrastructure components, services, handlers and
// background jobs, and wires them together. Shutdown releases what it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	limiter        ratelimit.Limiter

	// Services
	jwtSvc          *auth.JWTService
	metrics         *metrics.Registry
	authService     *userApp.AuthService
	approvalService *approvalApp.Service

	// Background jobs
	scheduler *scheduler.SchedulerManager
}

// NewContainer wires every component over db. It fails when a configured
// dependency cannot be built or reached.
func NewContainer(engine *gin.Engine, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: engine,
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initServices()
	c.initHandlers()
	return c, nil
}

// AuthService exposes the auth engine to the CLI.
func (c *Container) AuthService() *userApp.AuthService {
	return c.authService
}

// ApprovalService exposes the allow-list service to the CLI.
func (c *Container) ApprovalService() *approvalApp.Service {
	return c.approvalService
}

// Shutdown stops background jobs and closes the Redis client.
func (c *Container) Shutdown() {
	if c.scheduler != nil {
		if err := c.scheduler.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
