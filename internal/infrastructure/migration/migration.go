package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate for development and the goose scripts elsewhere.
func NewManager(environment, driver string) (*Manager, error) {
	var strategy Strategy = NewGormAutoMigrateStrategy()

	switch strings.ToLower(environment) {
	case constants.EnvTest, constants.EnvProduction:
		goose, err := NewGooseStrategy(driver)
		if err != nil {
			return nil, err
		}
		strategy = goose
	}

	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy over every persistence model.
func (m *Manager) Migrate(db *gorm.DB) error {
	all := models.All()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(all))

	if err := m.strategy.Migrate(db, all...); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
