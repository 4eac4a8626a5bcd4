package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/mappers"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
	"github.com/gohub-app/gohub/internal/shared/db"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

type ApprovalRepository struct {
	db     *gorm.DB
	mapper mappers.ApprovalMapper
	logger logger.Interface
}

func NewApprovalRepository(gdb *gorm.DB, log logger.Interface) approval.Repository {
	return &ApprovalRepository{
		db:     gdb,
		mapper: mappers.NewApprovalMapper(),
		logger: log,
	}
}

func (r *ApprovalRepository) GetByRegistrationNumber(ctx context.Context, number string) (*approval.ApprovedRegistration, error) {
	var model models.ApprovedRegistrationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("registration_number = ?", number).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ApprovalRepository) Create(ctx context.Context, entity *approval.ApprovedRegistration) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("Registration number already approved", entity.RegistrationNumber().String())
		}
		r.logger.Errorw("failed to create approval", "registration_number", entity.RegistrationNumber().String(), "error", err)
		return fmt.Errorf("failed to create approval: %w", err)
	}
	entity.SetID(model.ID)
	return nil
}

func (r *ApprovalRepository) Update(ctx context.Context, entity *approval.ApprovedRegistration) error {
	model := r.mapper.ToModel(entity)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ApprovedRegistrationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"is_paid":      model.IsPaid,
			"payment_date": model.PaymentDate,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update approval: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("approval not found")
	}
	return nil
}

func (r *ApprovalRepository) List(ctx context.Context, filter approval.ListFilter) ([]*approval.ApprovedRegistration, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ApprovedRegistrationModel{})
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count approvals: %w", err)
	}

	p := utils.NormalizePagination(filter.Page, filter.PageSize)
	var list []*models.ApprovedRegistrationModel
	if err := query.Order("created_at DESC, id DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list approvals: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
