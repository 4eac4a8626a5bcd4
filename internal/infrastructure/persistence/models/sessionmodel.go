package models

import (
	"time"

	"github.com/gohub-app/gohub/internal/shared/constants"
)

// SessionModel represents the database persistence model for device sessions.
//
// ActiveUserID mirrors UserID while the session is active and is NULL otherwise.
// Its unique index is what guarantees a single active session per user.
type SessionModel struct {
	ID               string    `gorm:"primarykey;size:36"`
	UserID           string    `gorm:"size:36;not null;index:idx_sessions_user_active,priority:1"`
	ActiveUserID     *string   `gorm:"size:36;uniqueIndex"`
	DeviceID         string    `gorm:"size:255;not null;index"`
	DeviceName       string    `gorm:"size:255"`
	DeviceType       string    `gorm:"size:50"`
	IPAddress        string    `gorm:"size:45"`
	UserAgent        string    `gorm:"size:512"`
	AccessTokenHash  string    `gorm:"size:64;index"`
	RefreshTokenHash string    `gorm:"size:64;index"`
	IsActive         bool      `gorm:"not null;default:true;index:idx_sessions_user_active,priority:2"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	LastActivityAt   time.Time `gorm:"not null"`
	CreatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return constants.TableUserSessions
}
