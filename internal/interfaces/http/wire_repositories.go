package http

import (
	"gorm.io/gorm"

	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/repository"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	approvalRepo  approval.Repository
	userRepo      user.Repository
	sessionRepo   user.SessionRepository
	deviceLogRepo user.DeviceLogRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		approvalRepo:  repository.NewApprovalRepository(db, log),
		userRepo:      repository.NewUserRepository(db, log),
		sessionRepo:   repository.NewSessionRepository(db),
		deviceLogRepo: repository.NewDeviceLogRepository(db),
	}
}
