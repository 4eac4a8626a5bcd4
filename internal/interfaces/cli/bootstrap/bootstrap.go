// Package bootstrap loads configuration and opens the store for CLI commands.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/gohub-app/gohub/internal/infrastructure/config"
	"github.com/gohub-app/gohub/internal/infrastructure/database"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flag string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flag
}

// GinMode maps a deployment environment to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}

// Init loads the configuration for environment and initializes the logger.
func Init(environment string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(GinMode(environment))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase is Init followed by opening the configured database.
// Callers close it with database.Close.
func InitWithDatabase(environment string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(environment)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}
