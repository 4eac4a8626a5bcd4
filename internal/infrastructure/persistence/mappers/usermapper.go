package mappers

import (
	"fmt"

	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/domain/user"
	vo "github.com/gohub-app/gohub/internal/domain/user/valueobjects"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UserModel) (*user.User, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *user.User) *models.UserModel
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create name value object: %w", err)
	}

	var email *vo.Email
	if model.Email != nil {
		email, err = vo.NewEmail(*model.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to create email value object: %w", err)
		}
	}

	return user.ReconstructUser(user.UserData{
		ID:                     model.ID,
		Name:                   name,
		Email:                  email,
		RegistrationNumber:     shared.ReconstructRegistrationNumber(model.RegistrationNumber),
		PasswordHash:           model.PasswordHash,
		Active:                 model.IsActive,
		Activated:              model.IsActivated,
		ApprovedRegistrationID: model.ApprovedRegistrationID,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	})
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}

	var email *string
	if e := entity.Email(); e != nil {
		s := e.String()
		email = &s
	}

	return &models.UserModel{
		ID:                     entity.ID(),
		Name:                   entity.Name().String(),
		Email:                  email,
		RegistrationNumber:     entity.RegistrationNumber().String(),
		PasswordHash:           entity.PasswordHash(),
		IsActive:               entity.IsActive(),
		IsActivated:            entity.IsActivated(),
		ApprovedRegistrationID: entity.ApprovedRegistrationID(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}
}
