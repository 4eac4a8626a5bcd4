package usecases

import (
	"context"
	"time"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

type MarkPaidCommand struct {
	RegistrationNumber string
	PaymentDate        *time.Time
}

type MarkPaidUseCase struct {
	repo   approval.Repository
	binder Binder
	logger logger.Interface
}

func NewMarkPaidUseCase(repo approval.Repository, binder Binder, logger logger.Interface) *MarkPaidUseCase {
	return &MarkPaidUseCase{repo: repo, binder: binder, logger: logger}
}

// Execute records payment. Paying an already paid entry is a no-op.
func (uc *MarkPaidUseCase) Execute(ctx context.Context, cmd MarkPaidCommand) (*approval.ApprovedRegistration, error) {
	number := utils.NormalizeRegistrationNumber(cmd.RegistrationNumber)

	ctx, cancel := uc.binder.Bound(ctx)
	defer cancel()

	entry, err := uc.repo.GetByRegistrationNumber(ctx, number)
	if err != nil {
		return nil, common.StoreError(uc.logger, "failed to get approval", err, "registration_number", number)
	}
	if entry == nil {
		return nil, apperrors.NewNotFoundError("approval not found", number)
	}
	if entry.IsPaid() {
		return entry, nil
	}

	paidAt := biztime.NowUTC()
	if cmd.PaymentDate != nil {
		paidAt = *cmd.PaymentDate
	}
	entry.MarkPaid(paidAt)

	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, common.StoreError(uc.logger, "failed to mark approval paid", err, "registration_number", number)
	}

	uc.logger.Infow("approval marked paid", "registration_number", number)
	return entry, nil
}
