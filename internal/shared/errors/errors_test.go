package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NewInvalidCredentialsError())

	assert.Equal(t, ErrorTypeInvalidCredentials, TypeOf(wrapped))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(NewNotFoundError("missing")))
	assert.Equal(t, ErrorTypeInternal, TypeOf(stderrors.New("boom")))
}

func TestAuthErrorUnwrapsToAppError(t *testing.T) {
	err := fmt.Errorf("register: %w", NewAlreadyRegisteredError())

	appErr := GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Equal(t, "User already registered with this registration number", appErr.Message)
	}
	assert.NotNil(t, GetAuthError(err))
	assert.False(t, ShouldLogAuthError(err))
}

func TestTokenErrorsCarryTokenKind(t *testing.T) {
	assert.Equal(t, "refresh token has expired", NewTokenExpiredError("refresh token").Message)
	assert.Equal(t, "Invalid access token", NewTokenInvalidError("access token").Message)
	assert.True(t, IsSecurityEvent(NewTokenInvalidError("access token")))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", stderrors.New("Error 1062 (23000): Duplicate entry 'REG1' for key 'users.idx_users_registration_number'"), true},
		{"postgres", stderrors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`), true},
		{"sqlite", stderrors.New("UNIQUE constraint failed: users.registration_number"), true},
		{"other", stderrors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
