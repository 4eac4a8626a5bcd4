package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/mappers"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/db"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(gdb *gorm.DB, log logger.Interface) user.Repository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
		logger: log,
	}
}

// Create reports unique violations as conflict errors whose details name the column.
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := r.mapper.ToModel(entity)
	err := db.GetTxFromContext(ctx, r.db).Omit("ApprovedRegistration").Create(model).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		column := violatedColumn(err, constants.TableUsers, user.ConflictFieldEmail, user.ConflictFieldRegistrationNumber)
		if column == "" {
			column = user.ConflictFieldRegistrationNumber
		}
		return apperrors.NewConflictError("user already exists", column)
	}
	r.logger.Errorw("failed to create user", "error", err)
	return fmt.Errorf("failed to create user: %w", err)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByRegistrationNumber(ctx context.Context, number string) (*user.User, error) {
	return r.first(ctx, "registration_number = ?", number)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model to entity", "user_id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return entity, nil
}

func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]any{
			"is_active":    entity.IsActive(),
			"is_activated": entity.IsActivated(),
			"updated_at":   entity.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}
