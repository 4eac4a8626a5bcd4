package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	approvalApp "github.com/gohub-app/gohub/internal/application/approval"
	userApp "github.com/gohub-app/gohub/internal/application/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/infrastructure/config"
	"github.com/gohub-app/gohub/internal/infrastructure/metrics"
	"github.com/gohub-app/gohub/internal/infrastructure/ratelimit"
	"github.com/gohub-app/gohub/internal/infrastructure/scheduler"
	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
	shareddb "github.com/gohub-app/gohub/internal/shared/db"
)

// initInfrastructure builds Redis, the repositories, the token codec and the limiter.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if cfg.Redis.Enabled() {
		client, err := initRedis(cfg)
		if err != nil {
			return err
		}
		c.redis = client
		c.log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	}

	c.repos = newRepositories(c.db, c.log)

	jwtSvc, err := auth.NewJWTService(cfg.Auth.JWT)
	if err != nil {
		return fmt.Errorf("failed to build token service: %w", err)
	}
	c.jwtSvc = jwtSvc
	c.metrics = metrics.NewRegistry()

	limits := ratelimit.Limits{
		PerMinute: cfg.RateLimit.RequestsPerMinute,
		PerHour:   cfg.RateLimit.RequestsPerHour,
	}
	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis, limits, nil)
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter(limits, nil)
	}
	return nil
}

// initRedis creates the client and checks the connection.
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// initServices builds the auth engine, the allow-list service and the auth middleware.
func (c *Container) initServices() {
	cfg := c.cfg
	txm := shareddb.NewTransactionManager(c.db, cfg.Database.QueryTimeout())

	c.authService = userApp.NewAuthService(userApp.Dependencies{
		UserRepo:      c.repos.userRepo,
		ApprovalRepo:  c.repos.approvalRepo,
		SessionRepo:   c.repos.sessionRepo,
		DeviceLogRepo: c.repos.deviceLogRepo,
		Hasher:        auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		Tokens:        c.jwtSvc,
		Transactions:  txm,
		Recorder:      c.metrics,
		Logger:        c.log,
	})
	c.approvalService = approvalApp.NewService(c.repos.approvalRepo, txm, c.log)

	c.authMiddleware = middleware.NewAuthMiddleware(c.authService, c.log)
}

// StartBackground schedules the expired-session sweeper. A zero interval disables it.
func (c *Container) StartBackground() error {
	interval := c.cfg.Auth.Session.SweepInterval()
	if interval <= 0 {
		c.log.Infow("session sweeper disabled")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}
	if err := manager.RegisterSessionSweepJob(c.authService, interval); err != nil {
		return err
	}
	manager.Start()
	c.scheduler = manager
	return nil
}
