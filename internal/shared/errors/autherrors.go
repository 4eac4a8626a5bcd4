package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeNotApproved        ErrorType = "not_approved"
	ErrorTypeNotPaid            ErrorType = "not_paid"
	ErrorTypeAlreadyRegistered  ErrorType = "already_registered"
	ErrorTypeEmailTaken         ErrorType = "email_taken"
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountDeactivated ErrorType = "account_deactivated"
	ErrorTypeAccountPending     ErrorType = "account_pending"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged
	// Some auth errors (like invalid credentials) may be expected and don't need error-level logging
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

func newAuthError(errType ErrorType, code int, message string, shouldLog, securityEvent bool) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    errType,
			Message: message,
			Code:    code,
		},
		ShouldLog:     shouldLog,
		SecurityEvent: securityEvent,
	}
}

// NewNotApprovedError is returned when a registration number is absent from the allow-list.
func NewNotApprovedError() *AuthError {
	return newAuthError(ErrorTypeNotApproved, http.StatusBadRequest,
		"Registration number not found in approved list", false, true)
}

// NewNotPaidError is returned when a registration number is approved but unpaid.
func NewNotPaidError() *AuthError {
	return newAuthError(ErrorTypeNotPaid, http.StatusBadRequest,
		"Registration number not yet paid", false, false)
}

// NewAlreadyRegisteredError is returned when a user already holds the registration number.
func NewAlreadyRegisteredError() *AuthError {
	return newAuthError(ErrorTypeAlreadyRegistered, http.StatusConflict,
		"User already registered with this registration number", false, false)
}

// NewEmailTakenError is returned when the email is bound to another user.
func NewEmailTakenError() *AuthError {
	return newAuthError(ErrorTypeEmailTaken, http.StatusConflict,
		"Email already registered", false, false)
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message is identical for an unknown registration number and a wrong password.
func NewInvalidCredentialsError() *AuthError {
	return newAuthError(ErrorTypeInvalidCredentials, http.StatusUnauthorized,
		"Invalid registration number or password", false, true)
}

// NewAccountDeactivatedError creates an error for deactivated accounts
func NewAccountDeactivatedError() *AuthError {
	return newAuthError(ErrorTypeAccountDeactivated, http.StatusForbidden,
		"Account is deactivated", true, true)
}

// NewAccountPendingError creates an error for accounts that are not yet activated
func NewAccountPendingError() *AuthError {
	return newAuthError(ErrorTypeAccountPending, http.StatusForbidden,
		"Account pending activation", false, false)
}

// NewTokenExpiredError creates an error for expired tokens (access, refresh)
func NewTokenExpiredError(tokenType string) *AuthError {
	e := newAuthError(ErrorTypeTokenExpired, http.StatusUnauthorized,
		fmt.Sprintf("%s has expired", tokenType), false, false)
	e.Details = "Please login again"
	return e
}

// NewTokenInvalidError creates an error for invalid tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	e := newAuthError(ErrorTypeTokenInvalid, http.StatusUnauthorized,
		fmt.Sprintf("Invalid %s", tokenType), true, true)
	e.Details = "Token is invalid or has been revoked"
	return e
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
