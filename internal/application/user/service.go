package user

import (
	"context"
	"time"

	"github.com/gohub-app/gohub/internal/application/user/dto"
	"github.com/gohub-app/gohub/internal/application/user/usecases"
	"github.com/gohub-app/gohub/internal/domain/approval"
	domainUser "github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/constants"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

const (
	MsgRegistered     = "User registered successfully"
	MsgLoggedIn       = "Login successful"
	MsgLoggedOut      = "Logout successful"
	MsgTokenRefreshed = "Token refreshed successfully"
)

// Operation names reported to the OutcomeRecorder.
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpRefresh  = "refresh"
)

// OutcomeRecorder observes auth results. Result is "success" or an error type.
type OutcomeRecorder interface {
	ObserveAuth(operation, result string)
	ObserveEviction()
}

type nopRecorder struct{}

func (nopRecorder) ObserveAuth(string, string) {}
func (nopRecorder) ObserveEviction()           {}

// Dependencies wires the auth engine.
type Dependencies struct {
	UserRepo      domainUser.Repository
	ApprovalRepo  approval.Repository
	SessionRepo   domainUser.SessionRepository
	DeviceLogRepo domainUser.DeviceLogRepository
	Hasher        domainUser.PasswordHasher
	Tokens        usecases.TokenService
	Transactions  usecases.TransactionRunner
	Clock         biztime.Clock
	Recorder      OutcomeRecorder
	Logger        logger.Interface
}

// AuthService is the auth engine. It is stateless and safe for concurrent use;
// every operation returns an outcome, plus the typed error on failure.
type AuthService struct {
	registerUC     *usecases.RegisterUseCase
	loginUC        *usecases.LoginUseCase
	logoutUC       *usecases.LogoutUseCase
	refreshUC      *usecases.RefreshTokenUseCase
	authenticateUC *usecases.AuthenticateUseCase
	getUserUC      *usecases.GetUserUseCase
	deviceLogsUC   *usecases.ListDeviceLogsUseCase
	sweepUC        *usecases.SweepExpiredSessionsUseCase
	recorder       OutcomeRecorder
	now            biztime.Clock
	logger         logger.Interface
}

func NewAuthService(d Dependencies) *AuthService {
	recorder := d.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	log := d.Logger.Named("auth")

	return &AuthService{
		registerUC: usecases.NewRegisterUseCase(d.UserRepo, d.ApprovalRepo, d.SessionRepo, d.DeviceLogRepo,
			d.Hasher, d.Tokens, d.Transactions, d.Clock, log),
		loginUC: usecases.NewLoginUseCase(d.UserRepo, d.SessionRepo, d.DeviceLogRepo,
			d.Hasher, d.Tokens, d.Transactions, d.Clock, log),
		logoutUC:       usecases.NewLogoutUseCase(d.SessionRepo, d.DeviceLogRepo, d.Transactions, log),
		refreshUC:      usecases.NewRefreshTokenUseCase(d.UserRepo, d.SessionRepo, d.Tokens, d.Transactions, d.Clock, log),
		authenticateUC: usecases.NewAuthenticateUseCase(d.SessionRepo, d.Tokens, d.Transactions, d.Clock, log),
		getUserUC:      usecases.NewGetUserUseCase(d.UserRepo, d.Transactions, log),
		deviceLogsUC:   usecases.NewListDeviceLogsUseCase(d.DeviceLogRepo, d.Transactions, log),
		sweepUC:        usecases.NewSweepExpiredSessionsUseCase(d.SessionRepo, d.Transactions, d.Clock, log),
		recorder:       recorder,
		now:            d.Clock.OrDefault(),
		logger:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, cmd usecases.RegisterCommand) (*dto.RegisterOutcome, error) {
	result, err := s.registerUC.Execute(ctx, cmd)
	if err != nil {
		return &dto.RegisterOutcome{Outcome: s.failure(OpRegister, err)}, err
	}

	s.recorder.ObserveAuth(OpRegister, "success")
	return &dto.RegisterOutcome{
		Outcome:      dto.Outcome{Success: true, Message: MsgRegistered},
		UserID:       result.User.ID(),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, cmd usecases.LoginCommand) (*dto.LoginOutcome, error) {
	result, err := s.loginUC.Execute(ctx, cmd)
	if err != nil {
		return &dto.LoginOutcome{Outcome: s.failure(OpLogin, err)}, err
	}

	s.recorder.ObserveAuth(OpLogin, "success")
	binding := &dto.DeviceBindingInfo{
		PreviousDeviceLoggedOut: result.Binding.PreviousDeviceLoggedOut,
		Message:                 result.Binding.Message,
	}
	if result.Binding.Evicted != nil {
		s.recorder.ObserveEviction()
		label := result.Binding.Evicted.DeviceLabel()
		binding.PreviousDeviceInfo = &label
	}

	return &dto.LoginOutcome{
		Outcome:           dto.Outcome{Success: true, Message: MsgLoggedIn},
		User:              dto.ToUserResponse(result.User),
		AccessToken:       result.Tokens.AccessToken,
		RefreshToken:      result.Tokens.RefreshToken,
		DeviceBindingInfo: binding,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, cmd usecases.LogoutCommand) (*dto.LogoutOutcome, error) {
	if err := s.logoutUC.Execute(ctx, cmd); err != nil {
		return &dto.LogoutOutcome{Outcome: s.failure(OpLogout, err)}, err
	}

	s.recorder.ObserveAuth(OpLogout, "success")
	return &dto.LogoutOutcome{Outcome: dto.Outcome{Success: true, Message: MsgLoggedOut}}, nil
}

func (s *AuthService) RefreshTokens(ctx context.Context, cmd usecases.RefreshTokenCommand) (*dto.RefreshOutcome, error) {
	result, err := s.refreshUC.Execute(ctx, cmd)
	if err != nil {
		return &dto.RefreshOutcome{Outcome: s.failure(OpRefresh, err)}, err
	}

	s.recorder.ObserveAuth(OpRefresh, "success")
	return &dto.RefreshOutcome{
		Outcome: dto.Outcome{Success: true, Message: MsgTokenRefreshed},
		Tokens:  toTokenResponse(result.Tokens, result.Tokens.AccessExpiresAt.Sub(s.now())),
	}, nil
}

// Authenticate resolves an access token to its active session.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*usecases.AuthenticateResult, error) {
	return s.authenticateUC.Execute(ctx, accessToken)
}

// IdentifyToken resolves an access token to its session even after the
// session was evicted or logged out.
func (s *AuthService) IdentifyToken(ctx context.Context, accessToken string) (*usecases.AuthenticateResult, error) {
	return s.authenticateUC.Identify(ctx, accessToken)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := s.getUserUC.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

func (s *AuthService) ListDeviceLogs(ctx context.Context, userID string, limit int) ([]*dto.DeviceLogResponse, error) {
	entries, err := s.deviceLogsUC.Execute(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.ToDeviceLogResponses(entries), nil
}

func (s *AuthService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return s.sweepUC.Execute(ctx)
}

// failure builds the outcome for err. Foreign errors never reach the caller verbatim.
func (s *AuthService) failure(operation string, err error) dto.Outcome {
	errType := apperrors.TypeOf(err)
	s.recorder.ObserveAuth(operation, string(errType))

	message := constants.ErrMsgInternalServerError
	if appErr := apperrors.GetAppError(err); appErr != nil {
		message = appErr.Message
	} else {
		s.logger.Errorw("unexpected auth failure", "operation", operation, "error", err)
	}
	return dto.Outcome{Success: false, Message: message, Code: string(errType)}
}

func toTokenResponse(pair *auth.TokenPair, expiresIn time.Duration) *dto.TokenResponse {
	return &dto.TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn.Seconds()),
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
