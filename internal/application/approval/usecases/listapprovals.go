package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

type ListApprovalsUseCase struct {
	repo   approval.Repository
	binder Binder
	logger logger.Interface
}

func NewListApprovalsUseCase(repo approval.Repository, binder Binder, logger logger.Interface) *ListApprovalsUseCase {
	return &ListApprovalsUseCase{repo: repo, binder: binder, logger: logger}
}

func (uc *ListApprovalsUseCase) Execute(ctx context.Context, filter approval.ListFilter) ([]*approval.ApprovedRegistration, int64, error) {
	ctx, cancel := uc.binder.Bound(ctx)
	defer cancel()

	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, common.StoreError(uc.logger, "failed to list approvals", err)
	}
	return list, total, nil
}
