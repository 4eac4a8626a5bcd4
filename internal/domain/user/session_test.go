package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	device := DeviceInfo{DeviceID: "devA", DeviceName: "Phone", DeviceType: "android"}

	s, err := NewSession("user-1", device, "access-digest", "refresh-digest", now, now.Add(7*24*time.Hour))
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.True(t, s.Active)
	assert.Equal(t, "devA", s.DeviceID)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.LastActivityAt)
	assert.False(t, s.IsExpiredAt(now.Add(time.Hour)))
	assert.True(t, s.IsExpiredAt(now.Add(8*24*time.Hour)))
}

func TestNewSessionValidation(t *testing.T) {
	now := time.Now().UTC()
	device := DeviceInfo{DeviceID: "devA"}

	_, err := NewSession("", device, "a", "r", now, now.Add(time.Hour))
	assert.Error(t, err)

	_, err = NewSession("user-1", DeviceInfo{}, "a", "r", now, now.Add(time.Hour))
	assert.Error(t, err)

	_, err = NewSession("user-1", device, "a", "r", now, now)
	assert.Error(t, err)
}

func TestDeviceLabel(t *testing.T) {
	assert.Equal(t, "Device: Phone", (&Session{DeviceName: "Phone"}).DeviceLabel())
	assert.Equal(t, "Device: Unknown", (&Session{}).DeviceLabel())
}

func TestDeviceAction(t *testing.T) {
	assert.True(t, DeviceActionLogin.IsValid())
	assert.True(t, DeviceActionDeviceChange.IsValid())
	assert.False(t, DeviceAction("wipe").IsValid())

	entry := NewDeviceLogEntry("user-1", DeviceInfo{DeviceID: "devB", DeviceName: "Tablet"}, DeviceActionDeviceChange, map[string]any{"previous_device_id": "devA"})
	assert.Equal(t, "devB", entry.DeviceID)
	assert.Equal(t, DeviceActionDeviceChange, entry.Action)
	assert.Equal(t, "devA", entry.Metadata["previous_device_id"])
	assert.False(t, entry.CreatedAt.IsZero())
}
