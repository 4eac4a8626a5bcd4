package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/shared/services"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

const accessTokenLabel = "access token"

type AuthenticateResult struct {
	UserID    string
	SessionID string
	DeviceID  string
	Active    bool
}

// AuthenticateUseCase resolves an access token to the session that issued it.
// A token whose session was evicted or logged out is rejected even before it expires.
type AuthenticateUseCase struct {
	sessionRepo user.SessionRepository
	tokens      TokenService
	digester    services.TokenDigester
	txm         TransactionRunner
	now         biztime.Clock
	logger      logger.Interface
}

func NewAuthenticateUseCase(
	sessionRepo user.SessionRepository,
	tokens TokenService,
	txm TransactionRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		sessionRepo: sessionRepo,
		tokens:      tokens,
		digester:    services.NewTokenDigester(),
		txm:         txm,
		now:         clock.OrDefault(),
		logger:      logger,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, accessToken string) (*AuthenticateResult, error) {
	session, err := uc.lookup(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, apperrors.NewTokenInvalidError(accessTokenLabel)
	}
	if session.IsExpiredAt(uc.now()) {
		return nil, apperrors.NewTokenExpiredError(accessTokenLabel)
	}
	return toAuthenticateResult(session), nil
}

// Identify resolves an access token to the session that issued it, active or
// not. The result names the device the token belongs to.
func (uc *AuthenticateUseCase) Identify(ctx context.Context, accessToken string) (*AuthenticateResult, error) {
	session, err := uc.lookup(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return toAuthenticateResult(session), nil
}

func (uc *AuthenticateUseCase) lookup(ctx context.Context, accessToken string) (*user.Session, error) {
	claims, err := uc.tokens.Decode(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.txm.Bound(ctx)
	defer cancel()

	session, err := uc.sessionRepo.GetByAccessTokenHash(ctx, uc.digester.Digest(accessToken))
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to get session by access token", err)
	}
	if session == nil || session.UserID != claims.Subject {
		return nil, apperrors.NewTokenInvalidError(accessTokenLabel)
	}
	return session, nil
}

func toAuthenticateResult(session *user.Session) *AuthenticateResult {
	return &AuthenticateResult{
		UserID:    session.UserID,
		SessionID: session.ID,
		DeviceID:  session.DeviceID,
		Active:    session.Active,
	}
}
