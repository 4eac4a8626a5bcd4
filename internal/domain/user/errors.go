package user

import "errors"

var (
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrAccountPending     = errors.New("account pending activation")
	// ErrSessionConflict means the active-session row changed under a binding transaction.
	ErrSessionConflict = errors.New("active session changed concurrently")
)

// Unique fields reported in the details of a conflict error from Repository.Create.
const (
	ConflictFieldEmail              = "email"
	ConflictFieldRegistrationNumber = "registration_number"
)
