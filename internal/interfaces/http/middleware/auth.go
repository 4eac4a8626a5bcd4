package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/application/user/usecases"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// ContextKeyDeviceID holds the device bound to the authenticated session.
const ContextKeyDeviceID = "device_id"

// SessionAuthenticator resolves access tokens to the sessions that issued them.
type SessionAuthenticator interface {
	// Authenticate admits only tokens of an active session.
	Authenticate(ctx context.Context, accessToken string) (*usecases.AuthenticateResult, error)
	// IdentifyToken also resolves tokens of evicted or logged-out sessions.
	IdentifyToken(ctx context.Context, accessToken string) (*usecases.AuthenticateResult, error)
}

type AuthMiddleware struct {
	sessions SessionAuthenticator
	logger   logger.Interface
}

func NewAuthMiddleware(sessions SessionAuthenticator, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// RequireSession admits requests whose access token belongs to an active
// session. Tokens of an evicted device are rejected before they expire.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		result, err := m.sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.reject(c, "session authentication failed", token, err)
			return
		}
		setSession(c, result)
		c.Next()
	}
}

// RequireToken admits any access token that still maps to the session it was
// issued for, active or not. Logout uses it so a device whose session was
// already replaced can still sign itself out. The session's device is set on
// the context; handlers must act on that device only.
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		result, err := m.sessions.IdentifyToken(c.Request.Context(), token)
		if err != nil {
			m.reject(c, "access token identification failed", token, err)
			return
		}
		setSession(c, result)
		c.Next()
	}
}

func setSession(c *gin.Context, result *usecases.AuthenticateResult) {
	c.Set(constants.ContextKeyUserID, result.UserID)
	c.Set(constants.ContextKeySessionID, result.SessionID)
	c.Set(ContextKeyDeviceID, result.DeviceID)
}

// reject logs the failure when it is worth logging and aborts with err.
func (m *AuthMiddleware) reject(c *gin.Context, msg, token string, err error) {
	if errors.IsSecurityEvent(err) || errors.ShouldLogAuthError(err) {
		m.logger.Warnw(msg,
			"error", err,
			"security_event", errors.IsSecurityEvent(err),
			"token", utils.MaskToken(token),
			"client_ip", c.ClientIP(),
		)
	}
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}

// CurrentDeviceID returns the device bound to the caller's access token.
func CurrentDeviceID(c *gin.Context) string {
	return c.GetString(ContextKeyDeviceID)
}

// bearerToken extracts the Authorization bearer token, aborting the request
// when it is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
		c.Abort()
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
		c.Abort()
		return "", false
	}
	return token, true
}

// CurrentUserID returns the user id set by the auth middleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}
