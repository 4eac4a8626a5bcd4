package models

import (
	"time"

	"github.com/gohub-app/gohub/internal/shared/constants"
)

// ApprovedRegistrationModel represents the database persistence model for the approval allow-list.
type ApprovedRegistrationModel struct {
	ID                 uint       `gorm:"primarykey"`
	RegistrationNumber string     `gorm:"size:50;not null;uniqueIndex"`
	StudentName        string     `gorm:"size:255;not null"`
	IsPaid             bool       `gorm:"not null;default:false;index"`
	PaymentDate        *time.Time `gorm:"column:payment_date"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (ApprovedRegistrationModel) TableName() string {
	return constants.TableApprovedRegistrations
}
