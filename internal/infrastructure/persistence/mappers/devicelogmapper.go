package mappers

import (
	"gorm.io/datatypes"

	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
)

// DeviceLogMapper converts audit entries.
type DeviceLogMapper interface {
	ToModel(entry *user.DeviceLogEntry) *models.DeviceLogModel
	ToDomain(model *models.DeviceLogModel) *user.DeviceLogEntry
}

type DeviceLogMapperImpl struct{}

func NewDeviceLogMapper() DeviceLogMapper {
	return &DeviceLogMapperImpl{}
}

func (m *DeviceLogMapperImpl) ToModel(entry *user.DeviceLogEntry) *models.DeviceLogModel {
	if entry == nil {
		return nil
	}

	var metadata datatypes.JSONMap
	if len(entry.Metadata) > 0 {
		metadata = datatypes.JSONMap(entry.Metadata)
	}

	return &models.DeviceLogModel{
		ID:         entry.ID,
		UserID:     entry.UserID,
		DeviceID:   entry.DeviceID,
		DeviceName: entry.DeviceName,
		DeviceType: entry.DeviceType,
		Action:     string(entry.Action),
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Metadata:   metadata,
		CreatedAt:  entry.CreatedAt,
	}
}

func (m *DeviceLogMapperImpl) ToDomain(model *models.DeviceLogModel) *user.DeviceLogEntry {
	if model == nil {
		return nil
	}
	return &user.DeviceLogEntry{
		ID:         model.ID,
		UserID:     model.UserID,
		DeviceID:   model.DeviceID,
		DeviceName: model.DeviceName,
		DeviceType: model.DeviceType,
		Action:     user.DeviceAction(model.Action),
		IPAddress:  model.IPAddress,
		UserAgent:  model.UserAgent,
		Metadata:   map[string]any(model.Metadata),
		CreatedAt:  model.CreatedAt,
	}
}
