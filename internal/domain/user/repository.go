package user

import "context"

// Repository defines the interface for user data operations.
// Lookups return nil, nil when no row matches.
type Repository interface {
	// Create inserts a user. Unique violations on registration number or
	// email are returned as conflict errors.
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)

	GetByRegistrationNumber(ctx context.Context, number string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists the active/activated flags.
	Update(ctx context.Context, user *User) error
}
