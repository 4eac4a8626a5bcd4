package dto

import (
	"time"

	"github.com/gohub-app/gohub/internal/domain/approval"
)

type ApprovalResponse struct {
	ID                 uint       `json:"id"`
	RegistrationNumber string     `json:"registration_number"`
	StudentName        string     `json:"student_name"`
	IsPaid             bool       `json:"is_paid"`
	PaymentDate        *time.Time `json:"payment_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BulkFailure names an item that was not added and why.
type BulkFailure struct {
	RegistrationNumber string `json:"registration_number"`
	Reason             string `json:"reason"`
}

type BulkAddResult struct {
	Succeeded []string      `json:"success"`
	Failed    []BulkFailure `json:"failed"`
}

func ToApprovalResponse(a *approval.ApprovedRegistration) *ApprovalResponse {
	if a == nil {
		return nil
	}
	return &ApprovalResponse{
		ID:                 a.ID(),
		RegistrationNumber: a.RegistrationNumber().String(),
		StudentName:        a.StudentName(),
		IsPaid:             a.IsPaid(),
		PaymentDate:        a.PaymentDate(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
}

func ToApprovalResponses(list []*approval.ApprovedRegistration) []*ApprovalResponse {
	out := make([]*ApprovalResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToApprovalResponse(a))
	}
	return out
}
