package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/mappers"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
	"github.com/gohub-app/gohub/internal/shared/db"
)

type DeviceLogRepository struct {
	db     *gorm.DB
	mapper mappers.DeviceLogMapper
}

func NewDeviceLogRepository(gdb *gorm.DB) user.DeviceLogRepository {
	return &DeviceLogRepository{
		db:     gdb,
		mapper: mappers.NewDeviceLogMapper(),
	}
}

func (r *DeviceLogRepository) Append(ctx context.Context, entry *user.DeviceLogEntry) error {
	model := r.mapper.ToModel(entry)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append device log: %w", err)
	}
	entry.ID = model.ID
	return nil
}

// ListByUserID returns the newest entries first.
func (r *DeviceLogRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*user.DeviceLogEntry, error) {
	var list []models.DeviceLogModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list device logs: %w", err)
	}

	entries := make([]*user.DeviceLogEntry, len(list))
	for i := range list {
		entries[i] = r.mapper.ToDomain(&list[i])
	}
	return entries, nil
}
