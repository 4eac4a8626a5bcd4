package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// SweepExpiredSessionsUseCase deactivates sessions past their expiry so that
// the active flag reflects reality between logins.
type SweepExpiredSessionsUseCase struct {
	sessionRepo user.SessionRepository
	txm         TransactionRunner
	now         biztime.Clock
	logger      logger.Interface
}

func NewSweepExpiredSessionsUseCase(
	sessionRepo user.SessionRepository,
	txm TransactionRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *SweepExpiredSessionsUseCase {
	return &SweepExpiredSessionsUseCase{
		sessionRepo: sessionRepo,
		txm:         txm,
		now:         clock.OrDefault(),
		logger:      logger,
	}
}

func (uc *SweepExpiredSessionsUseCase) Execute(ctx context.Context) (int64, error) {
	ctx, cancel := uc.txm.Bound(ctx)
	defer cancel()

	n, err := uc.sessionRepo.DeactivateExpired(ctx, uc.now())
	if err != nil {
		return 0, common.StoreError(uc.logger, "failed to deactivate expired sessions", err)
	}
	if n > 0 {
		uc.logger.Infow("expired sessions deactivated", "count", n)
	}
	return n, nil
}
