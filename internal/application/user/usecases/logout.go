package usecases

import (
	"context"
	"strings"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/user"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// LogoutCommand signs Device out. TokenDeviceID is the device bound to the
// caller's access token; a caller may only sign out its own device.
type LogoutCommand struct {
	UserID        string
	TokenDeviceID string
	Device        user.DeviceInfo
}

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	txm         TransactionRunner
	audit       *auditTrail
	logger      logger.Interface
}

func NewLogoutUseCase(
	sessionRepo user.SessionRepository,
	deviceLogRepo user.DeviceLogRepository,
	txm TransactionRunner,
	logger logger.Interface,
) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		txm:         txm,
		audit:       newAuditTrail(deviceLogRepo, txm, logger),
		logger:      logger,
	}
}

// Execute deactivates the user's sessions on the device. Nothing to deactivate
// is still a successful logout.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	device, err := normalizeDevice(cmd.Device)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.TokenDeviceID) != device.DeviceID {
		uc.logger.Warnw("logout rejected: device does not match access token",
			"user_id", cmd.UserID,
			"device_id", device.DeviceID,
			"token_device_id", cmd.TokenDeviceID,
		)
		return apperrors.NewForbiddenError("Access token does not belong to this device")
	}

	boundCtx, cancel := uc.txm.Bound(ctx)
	closed, err := uc.sessionRepo.DeactivateByUserAndDevice(boundCtx, cmd.UserID, device.DeviceID)
	cancel()
	if err != nil {
		return common.StoreError(uc.logger, "failed to deactivate device sessions", err,
			"user_id", cmd.UserID, "device_id", device.DeviceID)
	}

	uc.audit.record(ctx, user.NewDeviceLogEntry(cmd.UserID, device, user.DeviceActionLogout, map[string]any{
		"sessions_closed": closed,
	}))

	uc.logger.Infow("user logged out",
		"user_id", cmd.UserID,
		"device_id", device.DeviceID,
		"sessions_closed", closed,
	)
	return nil
}
