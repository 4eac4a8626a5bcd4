package approval

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/approval/dto"
	"github.com/gohub-app/gohub/internal/application/approval/usecases"
	domainApproval "github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// Service manages the approval allow-list for administrators and the CLI.
type Service struct {
	addUC      *usecases.AddApprovalUseCase
	bulkAddUC  *usecases.BulkAddApprovalsUseCase
	markPaidUC *usecases.MarkPaidUseCase
	listUC     *usecases.ListApprovalsUseCase
}

func NewService(repo domainApproval.Repository, binder usecases.Binder, logger logger.Interface) *Service {
	log := logger.Named("approval")
	return &Service{
		addUC:      usecases.NewAddApprovalUseCase(repo, binder, log),
		bulkAddUC:  usecases.NewBulkAddApprovalsUseCase(repo, binder, log),
		markPaidUC: usecases.NewMarkPaidUseCase(repo, binder, log),
		listUC:     usecases.NewListApprovalsUseCase(repo, binder, log),
	}
}

func (s *Service) Add(ctx context.Context, cmd usecases.AddApprovalCommand) (*dto.ApprovalResponse, error) {
	entry, err := s.addUC.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return dto.ToApprovalResponse(entry), nil
}

func (s *Service) BulkAdd(ctx context.Context, cmds []usecases.AddApprovalCommand) (*dto.BulkAddResult, error) {
	return s.bulkAddUC.Execute(ctx, cmds)
}

func (s *Service) MarkPaid(ctx context.Context, cmd usecases.MarkPaidCommand) (*dto.ApprovalResponse, error) {
	entry, err := s.markPaidUC.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return dto.ToApprovalResponse(entry), nil
}

func (s *Service) List(ctx context.Context, filter domainApproval.ListFilter) ([]*dto.ApprovalResponse, int64, error) {
	list, total, err := s.listUC.Execute(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToApprovalResponses(list), total, nil
}
