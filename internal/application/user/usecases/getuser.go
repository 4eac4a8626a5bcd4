package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/user"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// GetUserUseCase handles the business logic for retrieving a user
type GetUserUseCase struct {
	userRepo user.Repository
	txm      TransactionRunner
	logger   logger.Interface
}

// NewGetUserUseCase creates a new get user use case
func NewGetUserUseCase(userRepo user.Repository, txm TransactionRunner, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		txm:      txm,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	ctx, cancel := uc.txm.Bound(ctx)
	defer cancel()

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to get user", err, "user_id", userID)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return u, nil
}
