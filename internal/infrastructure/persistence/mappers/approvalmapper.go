package mappers

import (
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
)

// ApprovalMapper handles the conversion between approval entities and persistence models.
type ApprovalMapper interface {
	ToModel(entity *approval.ApprovedRegistration) *models.ApprovedRegistrationModel
	ToEntity(model *models.ApprovedRegistrationModel) (*approval.ApprovedRegistration, error)
	ToEntities(models []*models.ApprovedRegistrationModel) ([]*approval.ApprovedRegistration, error)
}

// ApprovalMapperImpl is the concrete implementation of ApprovalMapper.
type ApprovalMapperImpl struct{}

// NewApprovalMapper creates a new ApprovalMapper.
func NewApprovalMapper() ApprovalMapper {
	return &ApprovalMapperImpl{}
}

func (m *ApprovalMapperImpl) ToModel(entity *approval.ApprovedRegistration) *models.ApprovedRegistrationModel {
	if entity == nil {
		return nil
	}
	return &models.ApprovedRegistrationModel{
		ID:                 entity.ID(),
		RegistrationNumber: entity.RegistrationNumber().String(),
		StudentName:        entity.StudentName(),
		IsPaid:             entity.IsPaid(),
		PaymentDate:        entity.PaymentDate(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *ApprovalMapperImpl) ToEntity(model *models.ApprovedRegistrationModel) (*approval.ApprovedRegistration, error) {
	if model == nil {
		return nil, nil
	}
	return approval.ReconstructApprovedRegistration(
		model.ID,
		shared.ReconstructRegistrationNumber(model.RegistrationNumber),
		model.StudentName,
		model.IsPaid,
		model.PaymentDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ApprovalMapperImpl) ToEntities(list []*models.ApprovedRegistrationModel) ([]*approval.ApprovedRegistration, error) {
	entities := make([]*approval.ApprovedRegistration, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
