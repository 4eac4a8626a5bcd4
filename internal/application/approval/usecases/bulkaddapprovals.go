package usecases

import (
	"context"

	"github.com/gohub-app/gohub/internal/application/approval/dto"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/shared/constants"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

type BulkAddApprovalsUseCase struct {
	addUC  *AddApprovalUseCase
	logger logger.Interface
}

func NewBulkAddApprovalsUseCase(repo approval.Repository, binder Binder, logger logger.Interface) *BulkAddApprovalsUseCase {
	return &BulkAddApprovalsUseCase{
		addUC:  NewAddApprovalUseCase(repo, binder, logger),
		logger: logger,
	}
}

// Execute adds each item independently and reports per-item results. Only an
// unavailable store aborts the batch.
func (uc *BulkAddApprovalsUseCase) Execute(ctx context.Context, cmds []AddApprovalCommand) (*dto.BulkAddResult, error) {
	if len(cmds) == 0 {
		return nil, apperrors.NewValidationError("at least one approval is required")
	}

	result := &dto.BulkAddResult{
		Succeeded: make([]string, 0, len(cmds)),
		Failed:    []dto.BulkFailure{},
	}
	for _, cmd := range cmds {
		entry, err := uc.addUC.Execute(ctx, cmd)
		if err == nil {
			result.Succeeded = append(result.Succeeded, entry.RegistrationNumber().String())
			continue
		}
		if apperrors.TypeOf(err) == apperrors.ErrorTypeStoreUnavailable {
			return nil, err
		}

		reason := constants.ErrMsgInternalServerError
		if appErr := apperrors.GetAppError(err); appErr != nil {
			reason = appErr.Message
		}
		result.Failed = append(result.Failed, dto.BulkFailure{
			RegistrationNumber: cmd.RegistrationNumber,
			Reason:             reason,
		})
	}

	uc.logger.Infow("bulk approval import completed",
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return result, nil
}
