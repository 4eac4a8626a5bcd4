package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptestutil "github.com/gohub-app/gohub/internal/application/user/testutil"
	"github.com/gohub-app/gohub/internal/infrastructure/config"
	sharedConfig "github.com/gohub-app/gohub/internal/shared/config"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

const testAdminKey = "admin-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) *Router {
	t.Helper()

	cfg := &config.Config{
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT:      sharedConfig.JWTConfig{Secret: "router-secret"},
		},
		RateLimit: sharedConfig.RateLimitConfig{RequestsPerMinute: 1000},
		Admin:     sharedConfig.AdminConfig{Key: testAdminKey},
	}
	if mutate != nil {
		mutate(cfg)
	}

	r, err := NewRouter(apptestutil.OpenSQLite(t), cfg, logger.NewNopLogger())
	require.NoError(t, err)
	r.SetupRoutes()
	t.Cleanup(r.Shutdown)
	return r
}

func do(t *testing.T, r *Router, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.GetEngine().ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{constants.HeaderAuthorization: "Bearer " + token}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRouter_DeviceBoundFlow(t *testing.T) {
	r := newTestRouter(t, nil)
	admin := map[string]string{constants.HeaderAdminKey: testAdminKey}

	approval := map[string]any{
		"registration_number": "REG2024001",
		"student_name":        "Alice Smith",
		"is_paid":             true,
	}
	w := do(t, r, nethttp.MethodPost, "/api/admin/approvals", approval, nil)
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)

	w = do(t, r, nethttp.MethodPost, "/api/admin/approvals", approval, admin)
	require.Equal(t, nethttp.StatusCreated, w.Code)

	w = do(t, r, nethttp.MethodPost, "/api/auth/register", map[string]any{
		"name":                "Alice Smith",
		"registration_number": "REG2024001",
		"password":            "secret123",
		"device_id":           "dev-a",
		"device_name":         "Phone A",
		"device_type":         "android",
	}, nil)
	require.Equal(t, nethttp.StatusCreated, w.Code)
	tokenA := decode(t, w)["access_token"].(string)

	w = do(t, r, nethttp.MethodGet, "/api/auth/validate", nil, bearer(tokenA))
	require.Equal(t, nethttp.StatusOK, w.Code)

	w = do(t, r, nethttp.MethodPost, "/api/auth/login", map[string]any{
		"registration_number": "REG2024001",
		"password":            "secret123",
		"device_id":           "dev-b",
		"device_name":         "Tablet B",
		"device_type":         "ios",
	}, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	login := decode(t, w)
	tokenB := login["access_token"].(string)
	binding := login["device_binding_info"].(map[string]any)
	assert.Equal(t, true, binding["previous_device_logged_out"])

	w = do(t, r, nethttp.MethodGet, "/api/auth/validate", nil, bearer(tokenA))
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code, "evicted device token must be rejected")

	w = do(t, r, nethttp.MethodGet, "/api/auth/validate", nil, bearer(tokenB))
	require.Equal(t, nethttp.StatusOK, w.Code)

	w = do(t, r, nethttp.MethodGet, "/api/users/profile", nil, bearer(tokenB))
	require.Equal(t, nethttp.StatusOK, w.Code)

	w = do(t, r, nethttp.MethodGet, "/api/users/devices", nil, bearer(tokenB))
	require.Equal(t, nethttp.StatusOK, w.Code)

	// An evicted token cannot sign out the device that replaced it.
	w = do(t, r, nethttp.MethodPost, "/api/auth/logout", map[string]any{"device_id": "dev-b"}, bearer(tokenA))
	assert.Equal(t, nethttp.StatusForbidden, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = do(t, r, nethttp.MethodGet, "/api/auth/validate", nil, bearer(tokenB))
	require.Equal(t, nethttp.StatusOK, w.Code, "active device must survive a logout attempt by an evicted token")

	// The evicted device can still sign itself out.
	w = do(t, r, nethttp.MethodPost, "/api/auth/logout", map[string]any{"device_id": "dev-a"}, bearer(tokenA))
	assert.Equal(t, nethttp.StatusOK, w.Code)

	w = do(t, r, nethttp.MethodPost, "/api/auth/logout", map[string]any{"device_id": "dev-b"}, bearer(tokenB))
	require.Equal(t, nethttp.StatusOK, w.Code)

	w = do(t, r, nethttp.MethodGet, "/api/auth/validate", nil, bearer(tokenB))
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	w = do(t, r, nethttp.MethodGet, "/metrics", nil, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "gohub_auth_device_evictions_total 1"))
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{"/api/auth/validate", "/api/users/profile", "/api/users/devices"} {
		w := do(t, r, nethttp.MethodGet, path, nil, nil)
		assert.Equal(t, nethttp.StatusUnauthorized, w.Code, path)
	}

	w := do(t, r, nethttp.MethodPost, "/api/auth/logout", map[string]any{"device_id": "dev-a"}, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerMinute = 2
	})

	for i := 0; i < 2; i++ {
		w := do(t, r, nethttp.MethodPost, "/api/auth/login", map[string]any{}, nil)
		require.Equal(t, nethttp.StatusBadRequest, w.Code)
	}

	w := do(t, r, nethttp.MethodPost, "/api/auth/login", map[string]any{}, nil)
	assert.Equal(t, nethttp.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = do(t, r, nethttp.MethodGet, "/health", nil, nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
}

func TestRouter_AdminKeyNotConfigured(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Admin.Key = ""
	})

	w := do(t, r, nethttp.MethodGet, "/api/admin/approvals", nil, map[string]string{constants.HeaderAdminKey: "anything"})
	assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
}

func TestRouter_SweeperStartsWhenConfigured(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Auth.Session.SweepIntervalMinutes = 10
	})

	require.NoError(t, r.Container().StartBackground())
	assert.True(t, r.Container().scheduler.IsStarted())
	assert.Len(t, r.Container().scheduler.Jobs(), 1)
}
