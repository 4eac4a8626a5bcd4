// Package approval models the allow-list of registration numbers that may create accounts.
package approval

import (
	"fmt"
	"time"

	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/shared/biztime"
)

// ApprovedRegistration is a pre-vetted registration number. At most one exists per number.
type ApprovedRegistration struct {
	id                 uint
	registrationNumber shared.RegistrationNumber
	studentName        string
	isPaid             bool
	paymentDate        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

// NewApprovedRegistration creates an unsaved approval entry.
func NewApprovedRegistration(number shared.RegistrationNumber, studentName string, isPaid bool) (*ApprovedRegistration, error) {
	if number.IsZero() {
		return nil, fmt.Errorf("registration number is required")
	}
	if studentName == "" {
		return nil, fmt.Errorf("student name is required")
	}
	if len(studentName) > 255 {
		return nil, fmt.Errorf("student name cannot exceed 255 characters")
	}

	now := biztime.NowUTC()
	a := &ApprovedRegistration{
		registrationNumber: number,
		studentName:        studentName,
		createdAt:          now,
		updatedAt:          now,
	}
	if isPaid {
		a.MarkPaid(now)
	}
	return a, nil
}

// ReconstructApprovedRegistration rebuilds an approval from persistence.
func ReconstructApprovedRegistration(
	id uint,
	number shared.RegistrationNumber,
	studentName string,
	isPaid bool,
	paymentDate *time.Time,
	createdAt, updatedAt time.Time,
) (*ApprovedRegistration, error) {
	if id == 0 {
		return nil, fmt.Errorf("approval ID cannot be zero")
	}
	return &ApprovedRegistration{
		id:                 id,
		registrationNumber: number,
		studentName:        studentName,
		isPaid:             isPaid,
		paymentDate:        paymentDate,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (a *ApprovedRegistration) ID() uint { return a.id }
func (a *ApprovedRegistration) RegistrationNumber() shared.RegistrationNumber { return a.registrationNumber }
func (a *ApprovedRegistration) StudentName() string { return a.studentName }
func (a *ApprovedRegistration) IsPaid() bool { return a.isPaid }
func (a *ApprovedRegistration) PaymentDate() *time.Time { return a.paymentDate }
func (a *ApprovedRegistration) CreatedAt() time.Time { return a.createdAt }
func (a *ApprovedRegistration) UpdatedAt() time.Time { return a.updatedAt }

// SetID is called by the repository after insert.
func (a *ApprovedRegistration) SetID(id uint) {
	a.id = id
}

// MarkPaid records payment. Marking an already paid entry keeps the first payment date.
func (a *ApprovedRegistration) MarkPaid(at time.Time) {
	if a.isPaid && a.paymentDate != nil {
		return
	}
	paidAt := at.UTC()
	a.isPaid = true
	a.paymentDate = &paidAt
	a.updatedAt = biztime.NowUTC()
}
