// Package db provides database utilities including transaction management.
package db

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// txKey is the context key for storing transaction.
type txKey struct{}

// TransactionManager runs units of work against the store, each bounded by timeout.
type TransactionManager struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTransactionManager creates a new TransactionManager. A zero timeout disables the bound.
func NewTransactionManager(db *gorm.DB, timeout time.Duration) *TransactionManager {
	return &TransactionManager{db: db, timeout: timeout}
}

// RunInTransaction executes fn within a database transaction.
// If fn returns an error the transaction is rolled back, otherwise it is committed.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := tm.Bound(ctx)
	defer cancel()

	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// Bound derives a context carrying the store timeout.
func (tm *TransactionManager) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if tm.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, tm.timeout)
}

// GetTxFromContext returns the transaction from context if available.
// Repositories call this so they join an enclosing unit of work.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
