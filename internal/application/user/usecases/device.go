package usecases

import (
	"strings"

	"github.com/gohub-app/gohub/internal/domain/user"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// normalizeDevice trims the device id and strips markup from the device name.
func normalizeDevice(d user.DeviceInfo) (user.DeviceInfo, error) {
	d.DeviceID = strings.TrimSpace(d.DeviceID)
	if d.DeviceID == "" {
		return d, apperrors.NewValidationError("device ID is required")
	}
	d.DeviceName = utils.SanitizeText(d.DeviceName)
	d.DeviceType = strings.ToLower(strings.TrimSpace(d.DeviceType))
	return d, nil
}
