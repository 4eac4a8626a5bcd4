package user

import (
	"context"
	"time"

	"github.com/gohub-app/gohub/internal/shared/biztime"
)

// DeviceAction is the audited event kind.
type DeviceAction string

const (
	DeviceActionLogin        DeviceAction = "login"
	DeviceActionLogout       DeviceAction = "logout"
	DeviceActionDeviceChange DeviceAction = "device_change"
)

func (a DeviceAction) IsValid() bool {
	switch a {
	case DeviceActionLogin, DeviceActionLogout, DeviceActionDeviceChange:
		return true
	}
	return false
}

// DeviceLogEntry is an append-only audit record. Entries are never updated.
type DeviceLogEntry struct {
	ID         uint
	UserID     string
	DeviceID   string
	DeviceName string
	DeviceType string
	Action     DeviceAction
	IPAddress  string
	UserAgent  string
	Metadata   map[string]any
	CreatedAt  time.Time
}

// NewDeviceLogEntry builds an entry for device.
func NewDeviceLogEntry(userID string, device DeviceInfo, action DeviceAction, metadata map[string]any) *DeviceLogEntry {
	return &DeviceLogEntry{
		UserID:     userID,
		DeviceID:   device.DeviceID,
		DeviceName: device.DeviceName,
		DeviceType: device.DeviceType,
		Action:     action,
		IPAddress:  device.IPAddress,
		UserAgent:  device.UserAgent,
		Metadata:   metadata,
		CreatedAt:  biztime.NowUTC(),
	}
}

// DeviceLogRepository is the Audit Log store.
type DeviceLogRepository interface {
	Append(ctx context.Context, entry *DeviceLogEntry) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]*DeviceLogEntry, error)
}
