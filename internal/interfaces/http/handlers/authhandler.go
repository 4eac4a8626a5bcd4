package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/application/user/dto"
	"github.com/gohub-app/gohub/internal/application/user/usecases"
	reqdto "github.com/gohub-app/gohub/internal/interfaces/dto"
	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// AuthHandler serves the auth endpoints. Their bodies are the operation
// outcomes themselves, with the HTTP status taken from the error type.
type AuthHandler struct {
	auth   authService
	logger logger.Interface
}

func NewAuthHandler(auth authService, logger logger.Interface) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingFailure(c, err)
		return
	}

	outcome, err := h.auth.Register(c.Request.Context(), req.ToCommand(c))
	respondOutcome(c, http.StatusCreated, outcome, err)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingFailure(c, err)
		return
	}

	outcome, err := h.auth.Login(c.Request.Context(), req.ToCommand(c))
	respondOutcome(c, http.StatusOK, outcome, err)
}

// Logout handles POST /api/auth/logout. The caller is identified by the access
// token; the body names the device to sign out, which must be the token's own.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req reqdto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingFailure(c, err)
		return
	}

	outcome, err := h.auth.Logout(c.Request.Context(), req.ToCommand(c, middleware.CurrentUserID(c), middleware.CurrentDeviceID(c)))
	respondOutcome(c, http.StatusOK, outcome, err)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingFailure(c, err)
		return
	}

	outcome, err := h.auth.RefreshTokens(c.Request.Context(), usecases.RefreshTokenCommand{RefreshToken: req.RefreshToken})
	respondOutcome(c, http.StatusOK, outcome, err)
}

// Validate handles GET /api/auth/validate. It runs behind the session
// middleware, so reaching it means the token is live.
func (h *AuthHandler) Validate(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Token is valid", gin.H{
		"valid":      true,
		"user_id":    middleware.CurrentUserID(c),
		"session_id": c.GetString(constants.ContextKeySessionID),
		"device_id":  c.GetString(middleware.ContextKeyDeviceID),
	})
}

// respondOutcome writes outcome with okStatus on success, or with the status
// of err's type. Outcomes never carry internal error text.
func respondOutcome(c *gin.Context, okStatus int, outcome any, err error) {
	if err == nil {
		c.JSON(okStatus, outcome)
		return
	}

	status := http.StatusInternalServerError
	if appErr := errors.GetAppError(err); appErr != nil {
		status = appErr.Code
	}
	c.JSON(status, outcome)
}

func respondBindingFailure(c *gin.Context, err error) {
	appErr := errors.GetAppError(utils.FormatBindingError(err))
	message := appErr.Message
	if appErr.Details != "" {
		message += ": " + appErr.Details
	}
	c.JSON(http.StatusBadRequest, dto.Outcome{
		Success: false,
		Message: message,
		Code:    string(appErr.Type),
	})
}
