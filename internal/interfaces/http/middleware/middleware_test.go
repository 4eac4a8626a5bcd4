package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/application/user/usecases"
	"github.com/gohub-app/gohub/internal/infrastructure/ratelimit"
	"github.com/gohub-app/gohub/internal/shared/constants"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func perform(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":   c.GetString(constants.ContextKeyUserID),
		"device_id": c.GetString(ContextKeyDeviceID),
	})
}

func TestAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{"unset key is a server error", "", "anything", http.StatusInternalServerError},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"wrong key", "s3cret", "nope", http.StatusUnauthorized},
		{"correct key", "s3cret", "s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", AdminKey(tt.configured, logger.NewNopLogger()), okHandler)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAdminKey, tt.header)
			}
			w := perform(r, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

type fakeAuthenticator struct {
	result     *usecases.AuthenticateResult
	err        error
	token      string
	identified bool
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*usecases.AuthenticateResult, error) {
	f.token = token
	return f.result, f.err
}

func (f *fakeAuthenticator) IdentifyToken(_ context.Context, token string) (*usecases.AuthenticateResult, error) {
	f.token = token
	f.identified = true
	return f.result, f.err
}

func TestRequireSession(t *testing.T) {
	t.Run("active session", func(t *testing.T) {
		authn := &fakeAuthenticator{result: &usecases.AuthenticateResult{UserID: "user-1", SessionID: "s-1", DeviceID: "devA"}}
		r := gin.New()
		r.GET("/me", NewAuthMiddleware(authn, logger.NewNopLogger()).RequireSession(), okHandler)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		w := perform(r, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc.def.ghi", authn.token)
		assert.JSONEq(t, `{"user_id":"user-1","device_id":"devA"}`, w.Body.String())
	})

	t.Run("evicted session", func(t *testing.T) {
		authn := &fakeAuthenticator{err: apperrors.NewTokenInvalidError("access token")}
		r := gin.New()
		r.GET("/me", NewAuthMiddleware(authn, logger.NewNopLogger()).RequireSession(), okHandler)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := perform(r, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(apperrors.ErrorTypeTokenInvalid), decodeError(t, w).Error.Type)
	})

	t.Run("malformed header", func(t *testing.T) {
		authn := &fakeAuthenticator{}
		r := gin.New()
		r.GET("/me", NewAuthMiddleware(authn, logger.NewNopLogger()).RequireSession(), okHandler)

		for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer"} {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := perform(r, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		}
		assert.Empty(t, authn.token)
	})
}

func TestRequireToken(t *testing.T) {
	t.Run("evicted session still identifies its device", func(t *testing.T) {
		authn := &fakeAuthenticator{result: &usecases.AuthenticateResult{
			UserID: "user-42", SessionID: "s-1", DeviceID: "devA", Active: false,
		}}
		r := gin.New()
		r.POST("/logout", NewAuthMiddleware(authn, logger.NewNopLogger()).RequireToken(), okHandler)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		w := perform(r, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, authn.identified)
		assert.JSONEq(t, `{"user_id":"user-42","device_id":"devA"}`, w.Body.String())
	})

	t.Run("unknown token", func(t *testing.T) {
		authn := &fakeAuthenticator{err: apperrors.NewTokenExpiredError("access token")}
		r := gin.New()
		r.POST("/logout", NewAuthMiddleware(authn, logger.NewNopLogger()).RequireToken(), okHandler)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := perform(r, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(apperrors.ErrorTypeTokenExpired), decodeError(t, w).Error.Type)
	})
}

type recordedWarning struct {
	msg string
	kv  []interface{}
}

type warnRecorder struct {
	logger.Interface
	warnings []recordedWarning
}

func (w *warnRecorder) Warnw(msg string, keysAndValues ...interface{}) {
	w.warnings = append(w.warnings, recordedWarning{msg, keysAndValues})
}

func fieldValue(kv []interface{}, key string) interface{} {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == key {
			return kv[i+1]
		}
	}
	return nil
}

func TestRequireSessionLogsSecurityEvents(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantLogged    bool
		securityEvent bool
	}{
		{"revoked token", apperrors.NewTokenInvalidError("access token"), true, true},
		{"expired token", apperrors.NewTokenExpiredError("access token"), false, false},
		{"store failure", apperrors.NewStoreUnavailableError(), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &warnRecorder{Interface: logger.NewNopLogger()}
			r := gin.New()
			r.GET("/me", NewAuthMiddleware(&fakeAuthenticator{err: tt.err}, rec).RequireSession(), okHandler)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer abcdefghijklmnop")
			perform(r, req)

			if !tt.wantLogged {
				assert.Empty(t, rec.warnings)
				return
			}
			require.Len(t, rec.warnings, 1)
			assert.Equal(t, tt.securityEvent, fieldValue(rec.warnings[0].kv, "security_event"))
			assert.NotEqual(t, "abcdefghijklmnop", fieldValue(rec.warnings[0].kv, "token"))
		})
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, assert.AnError
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.Limits{PerMinute: 2}, nil)
	r := gin.New()
	r.Use(RateLimit(limiter, logger.NewNopLogger()))
	r.GET("/ping", okHandler)

	for i := 0; i < 2; i++ {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded", body["error"])
	assert.Equal(t, constants.ErrMsgRateLimited, body["message"])
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(failingLimiter{}, logger.NewNopLogger()))
	r.GET("/ping", okHandler)

	w := perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com"}))
	r.GET("/ping", okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := perform(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = perform(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type recordedRequest struct {
	method, route string
	status        int
}

type observerStub struct {
	seen []recordedRequest
}

func (o *observerStub) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.seen = append(o.seen, recordedRequest{method, route, status})
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	obs := &observerStub{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.PUT("/approvals/:number/payment", okHandler)

	perform(r, httptest.NewRequest(http.MethodPut, "/approvals/REG12345/payment", nil))
	perform(r, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	require.Len(t, obs.seen, 2)
	assert.Equal(t, recordedRequest{http.MethodPut, "/approvals/:number/payment", http.StatusOK}, obs.seen[0])
	assert.Equal(t, recordedRequest{http.MethodGet, "unmatched", http.StatusNotFound}, obs.seen[1])
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, constants.ErrMsgInternalServerError, decodeError(t, w).Error.Message)
}
