package usecases

import (
	"context"
	"errors"
	"sync"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/domain/shared/services"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/constants"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// Device binding messages.
const (
	BindingFirstLogin    = "First login"
	BindingSameDevice    = "Same device login"
	BindingDeviceChanged = "Previous device logged out automatically"
)

// maxBindAttempts bounds retries after losing the active-session race.
const maxBindAttempts = 3

type LoginCommand struct {
	RegistrationNumber string
	Password           string
	Device             user.DeviceInfo
}

// DeviceBinding describes what happened to the session that was active before login.
// Evicted is set only when a different device was logged out.
type DeviceBinding struct {
	PreviousDeviceLoggedOut bool
	Evicted                 *user.Session
	Message                 string
}

type LoginResult struct {
	User    *user.User
	Session *user.Session
	Tokens  *auth.TokenPair
	Binding DeviceBinding
}

type LoginUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	hasher      user.PasswordHasher
	tokens      TokenService
	digester    services.TokenDigester
	txm         TransactionRunner
	audit       *auditTrail
	now         biztime.Clock
	logger      logger.Interface

	dummyOnce sync.Once
	dummyHash string
}

func NewLoginUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	deviceLogRepo user.DeviceLogRepository,
	hasher user.PasswordHasher,
	tokens TokenService,
	txm TransactionRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		digester:    services.NewTokenDigester(),
		txm:         txm,
		audit:       newAuditTrail(deviceLogRepo, txm, logger),
		now:         clock.OrDefault(),
		logger:      logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	device, err := normalizeDevice(cmd.Device)
	if err != nil {
		return nil, err
	}

	existingUser, err := uc.authenticate(ctx, cmd.RegistrationNumber, cmd.Password)
	if err != nil {
		return nil, err
	}

	if err := existingUser.CheckLoginAllowed(); err != nil {
		uc.logger.Warnw("login refused by account state",
			"user_id", existingUser.ID(),
			"reason", err.Error(),
		)
		return nil, accountStateError(err)
	}

	tokens, err := uc.tokens.Issue(existingUser.ID())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", existingUser.ID(), "error", err)
		return nil, apperrors.NewInternalError(constants.ErrMsgInternalServerError)
	}

	session, binding, err := uc.bind(ctx, existingUser.ID(), device, tokens)
	if err != nil {
		return nil, err
	}

	var entries []*user.DeviceLogEntry
	if binding.Evicted != nil {
		entries = append(entries, user.NewDeviceLogEntry(existingUser.ID(), device, user.DeviceActionDeviceChange, map[string]any{
			"previous_session_id":  binding.Evicted.ID,
			"previous_device_id":   binding.Evicted.DeviceID,
			"previous_device_name": binding.Evicted.DeviceName,
		}))
		uc.logger.Infow("previous device logged out",
			"user_id", existingUser.ID(),
			"previous_device_id", binding.Evicted.DeviceID,
			"device_id", device.DeviceID,
		)
	}
	entries = append(entries, user.NewDeviceLogEntry(existingUser.ID(), device, user.DeviceActionLogin, map[string]any{
		"message":    binding.Message,
		"session_id": session.ID,
	}))
	uc.audit.record(ctx, entries...)

	uc.logger.Infow("user logged in", "user_id", existingUser.ID(), "session_id", session.ID)

	return &LoginResult{
		User:    existingUser,
		Session: session,
		Tokens:  tokens,
		Binding: binding,
	}, nil
}

// authenticate returns the same error for an unknown registration number and
// a wrong password, and spends a hash verification on both paths.
func (uc *LoginUseCase) authenticate(ctx context.Context, rawNumber, password string) (*user.User, error) {
	var existingUser *user.User
	if number, err := shared.NewRegistrationNumber(rawNumber); err == nil {
		ctx, cancel := uc.txm.Bound(ctx)
		defer cancel()

		existingUser, err = uc.userRepo.GetByRegistrationNumber(ctx, number.String())
		if err != nil {
			return nil, common.StoreError(uc.logger, "failed to get user by registration number", err)
		}
	}

	if existingUser == nil {
		uc.hasher.Verify(password, uc.timingHash())
		return nil, apperrors.NewInvalidCredentialsError()
	}
	if !existingUser.VerifyPassword(password, uc.hasher) {
		uc.logger.Infow("login with wrong password", "user_id", existingUser.ID())
		return nil, apperrors.NewInvalidCredentialsError()
	}
	return existingUser, nil
}

func (uc *LoginUseCase) timingHash() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.hasher.Hash("gohub-unknown-account")
	})
	return uc.dummyHash
}

// bind replaces the user's active session with a new one for device in a single
// transaction, retrying when a concurrent login changed the active row.
func (uc *LoginUseCase) bind(ctx context.Context, userID string, device user.DeviceInfo, tokens *auth.TokenPair) (*user.Session, DeviceBinding, error) {
	for attempt := 1; attempt <= maxBindAttempts; attempt++ {
		session, err := user.NewSession(userID, device,
			uc.digester.Digest(tokens.AccessToken),
			uc.digester.Digest(tokens.RefreshToken),
			uc.now(), tokens.RefreshExpiresAt)
		if err != nil {
			uc.logger.Errorw("failed to build session", "user_id", userID, "error", err)
			return nil, DeviceBinding{}, apperrors.NewInternalError(constants.ErrMsgInternalServerError)
		}

		var binding DeviceBinding
		err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
			var err error
			if binding, err = uc.releaseActiveSession(ctx, userID, device); err != nil {
				return err
			}
			return uc.sessionRepo.Create(ctx, session)
		})
		if err == nil {
			return session, binding, nil
		}
		if !errors.Is(err, user.ErrSessionConflict) {
			return nil, DeviceBinding{}, common.StoreError(uc.logger, "failed to bind device session", err, "user_id", userID)
		}

		uc.logger.Warnw("active session changed concurrently",
			"user_id", userID,
			"attempt", attempt,
		)
	}

	uc.logger.Errorw("device binding retries exhausted", "user_id", userID, "attempts", maxBindAttempts)
	return nil, DeviceBinding{}, apperrors.NewConflictError("Concurrent login in progress, please try again")
}

// releaseActiveSession deactivates the user's current session, if any. The
// deactivation only applies to the row read here.
func (uc *LoginUseCase) releaseActiveSession(ctx context.Context, userID string, device user.DeviceInfo) (DeviceBinding, error) {
	current, err := uc.sessionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return DeviceBinding{}, err
	}
	if current == nil {
		return DeviceBinding{Message: BindingFirstLogin}, nil
	}

	ok, err := uc.sessionRepo.Deactivate(ctx, current.ID)
	if err != nil {
		return DeviceBinding{}, err
	}
	if !ok {
		return DeviceBinding{}, user.ErrSessionConflict
	}

	if current.DeviceID == device.DeviceID {
		return DeviceBinding{Message: BindingSameDevice}, nil
	}
	return DeviceBinding{
		PreviousDeviceLoggedOut: true,
		Evicted:                 current,
		Message:                 BindingDeviceChanged,
	}, nil
}
