package models

import (
	"time"

	"github.com/gohub-app/gohub/internal/shared/constants"
)

// UserModel represents the database persistence model for users.
// Email is nullable so that the unique index admits any number of users without one.
type UserModel struct {
	ID                     string  `gorm:"primarykey;size:36"`
	Name                   string  `gorm:"size:100;not null"`
	Email                  *string `gorm:"size:255;uniqueIndex"`
	RegistrationNumber     string  `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash           string  `gorm:"size:255;not null"`
	IsActive               bool    `gorm:"not null;default:true"`
	IsActivated            bool    `gorm:"not null;default:false"`
	ApprovedRegistrationID uint    `gorm:"not null;index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	ApprovedRegistration *ApprovedRegistrationModel `gorm:"foreignKey:ApprovedRegistrationID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
