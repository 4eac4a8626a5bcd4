package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gohub-app/gohub/internal/domain/shared"
	vo "github.com/gohub-app/gohub/internal/domain/user/valueobjects"
	"github.com/gohub-app/gohub/internal/shared/biztime"
)

// User represents the user aggregate root (pure domain model without persistence concerns)
type User struct {
	id                     string
	name                   *vo.Name
	email                  *vo.Email
	registrationNumber     shared.RegistrationNumber
	passwordHash           string
	active                 bool
	activated              bool
	approvedRegistrationID uint
	createdAt              time.Time
	updatedAt              time.Time
}

// NewUser creates a user for an approved, paid registration.
// Approved registrants are active and activated immediately.
func NewUser(
	name *vo.Name,
	email *vo.Email,
	registrationNumber shared.RegistrationNumber,
	passwordHash string,
	approvedRegistrationID uint,
) (*User, error) {
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if registrationNumber.IsZero() {
		return nil, fmt.Errorf("registration number is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if approvedRegistrationID == 0 {
		return nil, fmt.Errorf("approved registration is required")
	}

	now := biztime.NowUTC()
	return &User{
		id:                     uuid.NewString(),
		name:                   name,
		email:                  email,
		registrationNumber:     registrationNumber,
		passwordHash:           passwordHash,
		active:                 true,
		activated:              true,
		approvedRegistrationID: approvedRegistrationID,
		createdAt:              now,
		updatedAt:              now,
	}, nil
}

// UserData carries persisted user state for reconstruction.
type UserData struct {
	ID                     string
	Name                   *vo.Name
	Email                  *vo.Email
	RegistrationNumber     shared.RegistrationNumber
	PasswordHash           string
	Active                 bool
	Activated              bool
	ApprovedRegistrationID uint
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(d UserData) (*User, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if d.Name == nil {
		return nil, fmt.Errorf("name is required")
	}

	return &User{
		id:                     d.ID,
		name:                   d.Name,
		email:                  d.Email,
		registrationNumber:     d.RegistrationNumber,
		passwordHash:           d.PasswordHash,
		active:                 d.Active,
		activated:              d.Activated,
		approvedRegistrationID: d.ApprovedRegistrationID,
		createdAt:              d.CreatedAt,
		updatedAt:              d.UpdatedAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Name() *vo.Name {
	return u.name
}

// Email returns nil when the user registered without one.
func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) RegistrationNumber() shared.RegistrationNumber {
	return u.registrationNumber
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) IsActive() bool {
	return u.active
}

func (u *User) IsActivated() bool {
	return u.activated
}

func (u *User) ApprovedRegistrationID() uint {
	return u.approvedRegistrationID
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Deactivate blocks future logins.
func (u *User) Deactivate() {
	if !u.active {
		return
	}
	u.active = false
	u.updatedAt = biztime.NowUTC()
}

// Activate clears both the active and activation gates.
func (u *User) Activate() {
	if u.active && u.activated {
		return
	}
	u.active = true
	u.activated = true
	u.updatedAt = biztime.NowUTC()
}
