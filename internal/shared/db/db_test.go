package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIsUnavailable(t *testing.T) {
	assert.False(t, IsUnavailable(nil))
	assert.False(t, IsUnavailable(errors.New("syntax error")))
	assert.True(t, IsUnavailable(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.True(t, IsUnavailable(fmt.Errorf("query: %w", driver.ErrBadConn)))
	assert.True(t, IsUnavailable(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))
}

type counter struct {
	ID    uint `gorm:"primarykey"`
	Value int
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&counter{}))
	return gdb
}

func TestRunInTransaction(t *testing.T) {
	gdb := newTestDB(t)
	tm := NewTransactionManager(gdb, time.Second)
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			return GetTxFromContext(txCtx, gdb).Create(&counter{Value: 1}).Error
		})
		require.NoError(t, err)

		var n int64
		gdb.Model(&counter{}).Count(&n)
		assert.Equal(t, int64(1), n)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := GetTxFromContext(txCtx, gdb).Create(&counter{Value: 2}).Error; err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var n int64
		gdb.Model(&counter{}).Where("value = ?", 2).Count(&n)
		assert.Zero(t, n)
	})
}

func TestBoundAppliesTimeout(t *testing.T) {
	tm := NewTransactionManager(nil, 50*time.Millisecond)

	ctx, cancel := tm.Bound(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 40*time.Millisecond)

	unbounded := NewTransactionManager(nil, 0)
	ctx2, cancel2 := unbounded.Bound(context.Background())
	defer cancel2()
	_, ok = ctx2.Deadline()
	assert.False(t, ok)
}
