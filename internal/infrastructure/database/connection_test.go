package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/shared/config"
)

func TestOpenSQLite(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitAndClose(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
