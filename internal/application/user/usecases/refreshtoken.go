package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/shared/services"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/constants"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

const refreshTokenLabel = "refresh token"

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	Session *user.Session
	Tokens  *auth.TokenPair
}

type RefreshTokenUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	tokens      TokenService
	digester    services.TokenDigester
	txm         TransactionRunner
	now         biztime.Clock
	logger      logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	tokens TokenService,
	txm TransactionRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		digester:    services.NewTokenDigester(),
		txm:         txm,
		now:         clock.OrDefault(),
		logger:      logger,
	}
}

// Execute issues a new access token for the session that owns the refresh
// token. The refresh token itself is returned unchanged.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	claims, err := uc.tokens.Decode(cmd.RefreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.txm.Bound(ctx)
	defer cancel()

	session, err := uc.sessionRepo.GetByRefreshTokenHash(ctx, uc.digester.Digest(cmd.RefreshToken))
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to get session by refresh token", err)
	}
	if session == nil || !session.Active || session.UserID != claims.Subject {
		uc.logger.Warnw("refresh token has no active session", "user_id", claims.Subject)
		return nil, apperrors.NewTokenInvalidError(refreshTokenLabel)
	}

	now := uc.now()
	if session.IsExpiredAt(now) {
		return nil, apperrors.NewTokenExpiredError(refreshTokenLabel)
	}

	owner, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to get user", err, "user_id", session.UserID)
	}
	if owner == nil {
		uc.logger.Warnw("user not found during token refresh", "user_id", session.UserID)
		return nil, apperrors.NewTokenInvalidError(refreshTokenLabel)
	}
	if err := owner.CheckLoginAllowed(); err != nil {
		return nil, accountStateError(err)
	}

	accessToken, accessExp, err := uc.tokens.IssueAccessToken(owner.ID())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", owner.ID(), "error", err)
		return nil, apperrors.NewInternalError(constants.ErrMsgInternalServerError)
	}

	rotated, err := uc.sessionRepo.RotateAccessToken(ctx, session.ID, uc.digester.Digest(accessToken), now)
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to update session token", err, "session_id", session.ID)
	}
	if !rotated {
		// Evicted between lookup and update.
		return nil, apperrors.NewTokenInvalidError(refreshTokenLabel)
	}

	uc.logger.Infow("access token refreshed", "user_id", owner.ID(), "session_id", session.ID)

	session.AccessTokenHash = uc.digester.Digest(accessToken)
	session.LastActivityAt = now
	return &RefreshTokenResult{
		Session: session,
		Tokens: &auth.TokenPair{
			AccessToken:      accessToken,
			RefreshToken:     cmd.RefreshToken,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: session.ExpiresAt,
		},
	}, nil
}
