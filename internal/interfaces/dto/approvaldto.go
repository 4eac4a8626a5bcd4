package dto

import (
	"time"

	"github.com/gohub-app/gohub/internal/application/approval/usecases"
)

// AddApprovalRequest adds one registration number to the allow-list.
// The number is normalized before validation, so lower case input is accepted.
type AddApprovalRequest struct {
	RegistrationNumber string     `json:"registration_number" binding:"required,min=5,max=50"`
	StudentName        string     `json:"student_name" binding:"required,min=1,max=255"`
	IsPaid             bool       `json:"is_paid"`
	PaymentDate        *time.Time `json:"payment_date"`
}

// BulkAddApprovalsRequest items are validated one by one by the use case so a
// bad row is reported instead of failing the batch.
type BulkAddApprovalsRequest struct {
	Students []AddApprovalRequest `json:"students" binding:"required,min=1,max=1000"`
}

type MarkPaidRequest struct {
	PaymentDate *time.Time `json:"payment_date"`
}

func (r *AddApprovalRequest) ToCommand() usecases.AddApprovalCommand {
	return usecases.AddApprovalCommand{
		RegistrationNumber: r.RegistrationNumber,
		StudentName:        r.StudentName,
		IsPaid:             r.IsPaid,
		PaymentDate:        r.PaymentDate,
	}
}

func (r *BulkAddApprovalsRequest) ToCommands() []usecases.AddApprovalCommand {
	cmds := make([]usecases.AddApprovalCommand, 0, len(r.Students))
	for i := range r.Students {
		cmds = append(cmds, r.Students[i].ToCommand())
	}
	return cmds
}
