package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// auditTrail appends device log entries after the primary write has committed.
// A failed append is logged and swallowed.
type auditTrail struct {
	repo   user.DeviceLogRepository
	txm    TransactionRunner
	logger logger.Interface
}

func newAuditTrail(repo user.DeviceLogRepository, txm TransactionRunner, log logger.Interface) *auditTrail {
	return &auditTrail{repo: repo, txm: txm, logger: log}
}

func (a *auditTrail) record(ctx context.Context, entries ...*user.DeviceLogEntry) {
	// The operation already succeeded; a client disconnect must not drop its audit.
	ctx, cancel := a.txm.Bound(context.WithoutCancel(ctx))
	defer cancel()

	for _, e := range entries {
		if err := a.repo.Append(ctx, e); err != nil {
			a.logger.Warnw("failed to record device log",
				"user_id", e.UserID,
				"device_id", e.DeviceID,
				"action", e.Action,
				"error", err,
			)
		}
	}
}
