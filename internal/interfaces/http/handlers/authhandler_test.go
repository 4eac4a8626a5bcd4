package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/application/user/dto"
	"github.com/gohub-app/gohub/internal/application/user/usecases"
	apptestutil "github.com/gohub-app/gohub/internal/application/user/testutil"
	"github.com/gohub-app/gohub/internal/interfaces/http/handlers/testutil"
	"github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *apptestutil.Harness) {
	t.Helper()
	h := apptestutil.NewHarness(t)
	return NewAuthHandler(h.Auth, logger.NewNopLogger()), h
}

func registerBody(deviceID string) map[string]any {
	return map[string]any{
		"name":                "Alice Smith",
		"registration_number": "REG2024001",
		"email":               "alice@example.com",
		"password":            "secret123",
		"device_id":           deviceID,
		"device_name":         "Phone A",
		"device_type":         "android",
	}
}

func loginBody(deviceID, deviceName, password string) map[string]any {
	return map[string]any{
		"registration_number": "REG2024001",
		"password":            password,
		"device_id":           deviceID,
		"device_name":         deviceName,
		"device_type":         "ios",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", true)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var out dto.RegisterOutcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "User registered successfully", out.Message)
	assert.NotEmpty(t, out.UserID)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Empty(t, out.Code)
	assert.EqualValues(t, 1, h.ActiveSessions(t, out.UserID))
}

func TestAuthHandler_RegisterRejectsUnpaid(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", false)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var out dto.Outcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.False(t, out.Success)
	assert.Equal(t, string(errors.ErrorTypeNotPaid), out.Code)
	assert.Equal(t, "Registration number not yet paid", out.Message)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"unknown device type", func(b map[string]any) { b["device_type"] = "windows" }},
		{"short password", func(b map[string]any) { b["password"] = "abc" }},
		{"malformed registration number", func(b map[string]any) { b["registration_number"] = "0bad" }},
		{"missing device id", func(b map[string]any) { delete(b, "device_id") }},
		{"bad email", func(b map[string]any) { b["email"] = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newAuthHandler(t)
			body := registerBody("dev-a")
			tt.mutate(body)

			c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", body)
			handler.Register(c)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var out dto.Outcome
			require.NoError(t, testutil.ParseResponse(w, &out))
			assert.False(t, out.Success)
			assert.Equal(t, string(errors.ErrorTypeValidation), out.Code)
		})
	}
}

func TestAuthHandler_LoginEvictsPreviousDevice(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", true)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/auth/login", loginBody("dev-b", "Phone B", "secret123"))
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	var out dto.LoginOutcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.User)
	assert.Equal(t, "REG2024001", out.User.RegistrationNumber)
	require.NotNil(t, out.DeviceBindingInfo)
	assert.True(t, out.DeviceBindingInfo.PreviousDeviceLoggedOut)
	require.NotNil(t, out.DeviceBindingInfo.PreviousDeviceInfo)
	assert.Contains(t, *out.DeviceBindingInfo.PreviousDeviceInfo, "Phone A")
	assert.EqualValues(t, 1, h.ActiveSessions(t, out.User.ID))
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", true)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, body := range []map[string]any{
		loginBody("dev-b", "Phone B", "wrong-password"),
		func() map[string]any {
			b := loginBody("dev-b", "Phone B", "secret123")
			b["registration_number"] = "REG9999999"
			return b
		}(),
	} {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", body)
		handler.Login(c)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		var out dto.LoginOutcome
		require.NoError(t, testutil.ParseResponse(w, &out))
		assert.False(t, out.Success)
		assert.Equal(t, string(errors.ErrorTypeInvalidCredentials), out.Code)
		assert.Equal(t, "Invalid registration number or password", out.Message)
		assert.Nil(t, out.User)
		assert.Empty(t, out.AccessToken)
	}
}

func TestAuthHandler_RefreshKeepsRefreshToken(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", true)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)
	var registered dto.RegisterOutcome
	require.NoError(t, testutil.ParseResponse(w, &registered))

	c, w = testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", map[string]any{
		"refresh_token": registered.RefreshToken,
	})
	handler.Refresh(c)

	require.Equal(t, http.StatusOK, w.Code)
	var out dto.RefreshOutcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Tokens)
	assert.Equal(t, registered.RefreshToken, out.Tokens.RefreshToken)
	assert.NotEqual(t, registered.AccessToken, out.Tokens.AccessToken)
	assert.Equal(t, "Bearer", out.Tokens.TokenType)
}

func TestAuthHandler_RefreshRejectsGarbage(t *testing.T) {
	handler, _ := newAuthHandler(t)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", map[string]any{
		"refresh_token": "not-a-token",
	})
	handler.Refresh(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var out dto.RefreshOutcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.False(t, out.Success)
	assert.Nil(t, out.Tokens)
}

func TestAuthHandler_Logout(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", true)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)
	var registered dto.RegisterOutcome
	require.NoError(t, testutil.ParseResponse(w, &registered))

	c, w = testutil.NewTestContext(http.MethodPost, "/api/auth/logout", map[string]any{"device_id": "dev-a"})
	testutil.SetAuthContext(c, registered.UserID)
	testutil.SetTokenDevice(c, "dev-a")
	handler.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
	var out dto.LogoutOutcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "Logout successful", out.Message)
	assert.EqualValues(t, 0, h.ActiveSessions(t, registered.UserID))
}

func TestAuthHandler_LogoutOfAnotherDeviceIsForbidden(t *testing.T) {
	handler, h := newAuthHandler(t)
	h.SeedApproval(t, "REG2024001", "Alice Smith", true)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", registerBody("dev-a"))
	handler.Register(c)
	var registered dto.RegisterOutcome
	require.NoError(t, testutil.ParseResponse(w, &registered))

	c, w = testutil.NewTestContext(http.MethodPost, "/api/auth/logout", map[string]any{"device_id": "dev-a"})
	testutil.SetAuthContext(c, registered.UserID)
	testutil.SetTokenDevice(c, "dev-b")
	handler.Logout(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	var out dto.LogoutOutcome
	require.NoError(t, testutil.ParseResponse(w, &out))
	assert.False(t, out.Success)
	assert.Equal(t, string(errors.ErrorTypeForbidden), out.Code)
	assert.EqualValues(t, 1, h.ActiveSessions(t, registered.UserID))
}

type failingAuthService struct {
	authService
	err error
}

func (f failingAuthService) Login(context.Context, usecases.LoginCommand) (*dto.LoginOutcome, error) {
	return &dto.LoginOutcome{Outcome: dto.Outcome{Message: "Service temporarily unavailable", Code: string(errors.TypeOf(f.err))}}, f.err
}

func TestAuthHandler_StatusFollowsErrorType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"store unavailable", errors.NewStoreUnavailableError(), http.StatusServiceUnavailable},
		{"conflict", errors.NewConflictError("busy"), http.StatusConflict},
		{"foreign error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(failingAuthService{err: tt.err}, logger.NewNopLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", loginBody("dev-a", "Phone", "secret123"))
			handler.Login(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
