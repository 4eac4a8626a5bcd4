package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

type ListDeviceLogsUseCase struct {
	deviceLogRepo user.DeviceLogRepository
	txm           TransactionRunner
	logger        logger.Interface
}

func NewListDeviceLogsUseCase(deviceLogRepo user.DeviceLogRepository, txm TransactionRunner, logger logger.Interface) *ListDeviceLogsUseCase {
	return &ListDeviceLogsUseCase{
		deviceLogRepo: deviceLogRepo,
		txm:           txm,
		logger:        logger,
	}
}

// Execute returns the user's most recent device events, newest first.
func (uc *ListDeviceLogsUseCase) Execute(ctx context.Context, userID string, limit int) ([]*user.DeviceLogEntry, error) {
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	ctx, cancel := uc.txm.Bound(ctx)
	defer cancel()

	entries, err := uc.deviceLogRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to list device logs", err, "user_id", userID)
	}
	return entries, nil
}
