package mappers

import (
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *user.Session) *models.SessionModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.SessionModel) *user.Session
}

// SessionMapperImpl is the concrete implementation of SessionMapper.
type SessionMapperImpl struct{}

// NewSessionMapper creates a new SessionMapper.
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

// ToModel sets ActiveUserID only for active sessions.
func (m *SessionMapperImpl) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}

	var activeUserID *string
	if entity.Active {
		id := entity.UserID
		activeUserID = &id
	}

	return &models.SessionModel{
		ID:               entity.ID,
		UserID:           entity.UserID,
		ActiveUserID:     activeUserID,
		DeviceID:         entity.DeviceID,
		DeviceName:       entity.DeviceName,
		DeviceType:       entity.DeviceType,
		IPAddress:        entity.IPAddress,
		UserAgent:        entity.UserAgent,
		AccessTokenHash:  entity.AccessTokenHash,
		RefreshTokenHash: entity.RefreshTokenHash,
		IsActive:         entity.Active,
		ExpiresAt:        entity.ExpiresAt,
		LastActivityAt:   entity.LastActivityAt,
		CreatedAt:        entity.CreatedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}
	return &user.Session{
		ID:               model.ID,
		UserID:           model.UserID,
		DeviceID:         model.DeviceID,
		DeviceName:       model.DeviceName,
		DeviceType:       model.DeviceType,
		IPAddress:        model.IPAddress,
		UserAgent:        model.UserAgent,
		AccessTokenHash:  model.AccessTokenHash,
		RefreshTokenHash: model.RefreshTokenHash,
		Active:           model.IsActive,
		ExpiresAt:        model.ExpiresAt,
		LastActivityAt:   model.LastActivityAt,
		CreatedAt:        model.CreatedAt,
	}
}
