package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/domain/shared/services"
	"github.com/gohub-app/gohub/internal/domain/user"
	vo "github.com/gohub-app/gohub/internal/domain/user/valueobjects"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/constants"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

type RegisterCommand struct {
	Name               string
	RegistrationNumber string
	Email              string
	Password           string
	Device             user.DeviceInfo
}

type RegisterResult struct {
	User    *user.User
	Session *user.Session
	Tokens  *auth.TokenPair
}

type RegisterUseCase struct {
	userRepo     user.Repository
	approvalRepo approval.Repository
	sessionRepo  user.SessionRepository
	hasher       user.PasswordHasher
	tokens       TokenService
	digester     services.TokenDigester
	txm          TransactionRunner
	audit        *auditTrail
	now          biztime.Clock
	logger       logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	approvalRepo approval.Repository,
	sessionRepo user.SessionRepository,
	deviceLogRepo user.DeviceLogRepository,
	hasher user.PasswordHasher,
	tokens TokenService,
	txm TransactionRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:     userRepo,
		approvalRepo: approvalRepo,
		sessionRepo:  sessionRepo,
		hasher:       hasher,
		tokens:       tokens,
		digester:     services.NewTokenDigester(),
		txm:          txm,
		audit:        newAuditTrail(deviceLogRepo, txm, logger),
		now:          clock.OrDefault(),
		logger:       logger,
	}
}

// Execute creates the user and its first session in one transaction. The
// registration-number unique index settles concurrent registrations.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	number, err := shared.NewRegistrationNumber(cmd.RegistrationNumber)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid registration number", err.Error())
	}
	name, err := vo.NewName(utils.SanitizeText(cmd.Name))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid name", err.Error())
	}
	email, err := vo.NewOptionalEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid email", err.Error())
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid password", err.Error())
	}
	device, err := normalizeDevice(cmd.Device)
	if err != nil {
		return nil, err
	}

	if warnings := password.Warnings(); len(warnings) > 0 {
		uc.logger.Infow("weak password accepted",
			"registration_number", number.String(),
			"warnings", warnings,
		)
	}

	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError(constants.ErrMsgInternalServerError)
	}

	var result *RegisterResult
	err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		approved, err := uc.checkEligibility(ctx, number, email)
		if err != nil {
			return err
		}

		newUser, err := user.NewUser(name, email, number, hash, approved.ID())
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.userRepo.Create(ctx, newUser); err != nil {
			return uc.conflictError(err)
		}

		tokens, err := uc.tokens.Issue(newUser.ID())
		if err != nil {
			return err
		}
		session, err := user.NewSession(newUser.ID(), device,
			uc.digester.Digest(tokens.AccessToken),
			uc.digester.Digest(tokens.RefreshToken),
			uc.now(), tokens.RefreshExpiresAt)
		if err != nil {
			return err
		}
		if err := uc.sessionRepo.Create(ctx, session); err != nil {
			return err
		}

		result = &RegisterResult{User: newUser, Session: session, Tokens: tokens}
		return nil
	})
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to register user", err,
			"registration_number", number.String())
	}

	uc.audit.record(ctx, user.NewDeviceLogEntry(result.User.ID(), device, user.DeviceActionLogin, map[string]any{
		"message":    BindingFirstLogin,
		"session_id": result.Session.ID,
		"source":     "register",
	}))

	uc.logger.Infow("user registered",
		"user_id", result.User.ID(),
		"registration_number", number.String(),
		"device_id", device.DeviceID,
	)
	return result, nil
}

func (uc *RegisterUseCase) checkEligibility(ctx context.Context, number shared.RegistrationNumber, email *vo.Email) (*approval.ApprovedRegistration, error) {
	approved, err := uc.approvalRepo.GetByRegistrationNumber(ctx, number.String())
	if err != nil {
		return nil, err
	}
	if approved == nil {
		return nil, apperrors.NewNotApprovedError()
	}
	if !approved.IsPaid() {
		return nil, apperrors.NewNotPaidError()
	}

	existing, err := uc.userRepo.GetByRegistrationNumber(ctx, number.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyRegisteredError()
	}

	if email != nil {
		owner, err := uc.userRepo.GetByEmail(ctx, email.String())
		if err != nil {
			return nil, err
		}
		if owner != nil {
			uc.logger.Infow("email already registered", "email", utils.MaskEmail(email.String()))
			return nil, apperrors.NewEmailTakenError()
		}
	}
	return approved, nil
}

// conflictError maps a unique violation lost to a concurrent registration.
func (uc *RegisterUseCase) conflictError(err error) error {
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Type != apperrors.ErrorTypeConflict {
		return err
	}
	if appErr.Details == user.ConflictFieldEmail {
		return apperrors.NewEmailTakenError()
	}
	return apperrors.NewAlreadyRegisteredError()
}
