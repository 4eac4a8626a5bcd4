package approval

import "context"

// Repository is the Approval Registry. The auth core only reads from it.
type Repository interface {
	// GetByRegistrationNumber returns nil, nil when no approval exists.
	GetByRegistrationNumber(ctx context.Context, number string) (*ApprovedRegistration, error)

	// Create inserts a new approval; a duplicate number yields a conflict error.
	Create(ctx context.Context, approval *ApprovedRegistration) error

	// Update persists payment changes.
	Update(ctx context.Context, approval *ApprovedRegistration) error

	// List returns approvals ordered by creation time.
	List(ctx context.Context, filter ListFilter) ([]*ApprovedRegistration, int64, error)
}

// ListFilter holds list pagination and filters.
type ListFilter struct {
	Page     int
	PageSize int
	IsPaid   *bool
}
