package usecases

import (
	"context"
	"time"

	"github.com/gohub-app/gohub/internal/application/common"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/shared/biztime"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// Binder applies the store timeout to a unit of work.
type Binder interface {
	Bound(ctx context.Context) (context.Context, context.CancelFunc)
}

type AddApprovalCommand struct {
	RegistrationNumber string
	StudentName        string
	IsPaid             bool
	PaymentDate        *time.Time
}

type AddApprovalUseCase struct {
	repo   approval.Repository
	binder Binder
	logger logger.Interface
}

func NewAddApprovalUseCase(repo approval.Repository, binder Binder, logger logger.Interface) *AddApprovalUseCase {
	return &AddApprovalUseCase{repo: repo, binder: binder, logger: logger}
}

// Execute adds a registration number to the allow-list. The number is stored
// trimmed and upper-cased; a duplicate yields a conflict error.
func (uc *AddApprovalUseCase) Execute(ctx context.Context, cmd AddApprovalCommand) (*approval.ApprovedRegistration, error) {
	entry, err := buildApproval(cmd)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.binder.Bound(ctx)
	defer cancel()

	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, common.StoreError(uc.logger, "failed to add approval", err,
			"registration_number", entry.RegistrationNumber().String())
	}

	uc.logger.Infow("approval added",
		"registration_number", entry.RegistrationNumber().String(),
		"is_paid", entry.IsPaid(),
	)
	return entry, nil
}

func buildApproval(cmd AddApprovalCommand) (*approval.ApprovedRegistration, error) {
	number, err := shared.NewRegistrationNumber(cmd.RegistrationNumber)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid registration number", err.Error())
	}

	entry, err := approval.NewApprovedRegistration(number, utils.SanitizeText(cmd.StudentName), false)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.IsPaid {
		paidAt := biztime.NowUTC()
		if cmd.PaymentDate != nil {
			paidAt = *cmd.PaymentDate
		}
		entry.MarkPaid(paidAt)
	}
	return entry, nil
}
