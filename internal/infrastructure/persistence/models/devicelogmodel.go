package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gohub-app/gohub/internal/shared/constants"
)

// DeviceLogModel is an append-only audit row.
type DeviceLogModel struct {
	ID         uint              `gorm:"primarykey"`
	UserID     string            `gorm:"size:36;not null;index"`
	DeviceID   string            `gorm:"size:255;not null"`
	DeviceName string            `gorm:"size:255"`
	DeviceType string            `gorm:"size:50"`
	Action     string            `gorm:"size:20;not null;index"`
	IPAddress  string            `gorm:"size:45"`
	UserAgent  string            `gorm:"size:512"`
	Metadata   datatypes.JSONMap `gorm:"type:json"`
	CreatedAt  time.Time         `gorm:"index"`
}

// TableName specifies the table name for GORM
func (DeviceLogModel) TableName() string {
	return constants.TableDeviceLogs
}
