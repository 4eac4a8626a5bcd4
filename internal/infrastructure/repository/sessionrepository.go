package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/mappers"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
	"github.com/gohub-app/gohub/internal/shared/db"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(gdb *gorm.DB) user.SessionRepository {
	return &SessionRepository{
		db:     gdb,
		mapper: mappers.NewSessionMapper(),
	}
}

// Create fails with user.ErrSessionConflict when the user already has an active session.
func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create session: %w", user.ErrSessionConflict)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetActiveByUserID(ctx context.Context, userID string) (*user.Session, error) {
	return r.first(
		db.GetTxFromContext(ctx, r.db).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Order("created_at DESC"))
}

func (r *SessionRepository) GetByRefreshTokenHash(ctx context.Context, hash string) (*user.Session, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("refresh_token_hash = ?", hash))
}

func (r *SessionRepository) GetByAccessTokenHash(ctx context.Context, hash string) (*user.Session, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("access_token_hash = ?", hash))
}

func (r *SessionRepository) first(query *gorm.DB) (*user.Session, error) {
	var model models.SessionModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, sessionID string) (bool, error) {
	result := r.deactivate(ctx).Where("id = ? AND is_active = ?", sessionID, true).Updates(deactivation())
	if result.Error != nil {
		return false, fmt.Errorf("failed to deactivate session: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *SessionRepository) DeactivateByUserAndDevice(ctx context.Context, userID, deviceID string) (int64, error) {
	result := r.deactivate(ctx).
		Where("user_id = ? AND device_id = ? AND is_active = ?", userID, deviceID, true).
		Updates(deactivation())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate device sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.deactivate(ctx).
		Where("is_active = ? AND expires_at < ?", true, now).
		Updates(deactivation())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) RotateAccessToken(ctx context.Context, sessionID, accessTokenHash string, at time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("id = ? AND is_active = ?", sessionID, true).
		Updates(map[string]any{
			"access_token_hash": accessTokenHash,
			"last_activity_at":  at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update session token: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *SessionRepository) CountActiveByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

func (r *SessionRepository) deactivate(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).Model(&models.SessionModel{})
}

// deactivation clears the active flag and releases the per-user unique slot.
func deactivation() map[string]any {
	return map[string]any{
		"is_active":      false,
		"active_user_id": nil,
	}
}
