package approval_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/application/approval/usecases"
	"github.com/gohub-app/gohub/internal/application/user/testutil"
	domainApproval "github.com/gohub-app/gohub/internal/domain/approval"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
)

func TestAddNormalizesRegistrationNumber(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()

	resp, err := h.Approval.Add(ctx, usecases.AddApprovalCommand{
		RegistrationNumber: "  reg2024001 ",
		StudentName:        "<b>Alice</b> Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "REG2024001", resp.RegistrationNumber)
	assert.Equal(t, "Alice Smith", resp.StudentName)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.PaymentDate)
	assert.NotZero(t, resp.ID)

	_, err = h.Approval.Add(ctx, usecases.AddApprovalCommand{RegistrationNumber: "REG2024001", StudentName: "Other"})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = h.Approval.Add(ctx, usecases.AddApprovalCommand{RegistrationNumber: "!!", StudentName: "Bad"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestAddPaidUsesGivenPaymentDate(t *testing.T) {
	h := testutil.NewHarness(t)
	paidAt := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	resp, err := h.Approval.Add(context.Background(), usecases.AddApprovalCommand{
		RegistrationNumber: "REG2024002",
		StudentName:        "Bob",
		IsPaid:             true,
		PaymentDate:        &paidAt,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.PaymentDate)
	assert.True(t, paidAt.Equal(*resp.PaymentDate))
}

func TestBulkAddReportsEachItem(t *testing.T) {
	h := testutil.NewHarness(t)
	h.SeedApproval(t, "REG2024001", "Existing", true)

	result, err := h.Approval.BulkAdd(context.Background(), []usecases.AddApprovalCommand{
		{RegistrationNumber: "REG2024002", StudentName: "Bob"},
		{RegistrationNumber: "REG2024001", StudentName: "Duplicate"},
		{RegistrationNumber: "??", StudentName: "Broken"},
		{RegistrationNumber: "REG2024003", StudentName: "Carol", IsPaid: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"REG2024002", "REG2024003"}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "REG2024001", result.Failed[0].RegistrationNumber)
	assert.Equal(t, "Registration number already approved", result.Failed[0].Reason)
	assert.Equal(t, "??", result.Failed[1].RegistrationNumber)
	assert.Equal(t, "invalid registration number", result.Failed[1].Reason)

	_, err = h.Approval.BulkAdd(context.Background(), nil)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestMarkPaid(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	h.SeedApproval(t, "REG2024001", "Alice", false)

	first := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	resp, err := h.Approval.MarkPaid(ctx, usecases.MarkPaidCommand{RegistrationNumber: "reg2024001", PaymentDate: &first})
	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.True(t, first.Equal(*resp.PaymentDate))

	later := first.Add(48 * time.Hour)
	resp, err = h.Approval.MarkPaid(ctx, usecases.MarkPaidCommand{RegistrationNumber: "REG2024001", PaymentDate: &later})
	require.NoError(t, err)
	assert.True(t, first.Equal(*resp.PaymentDate), "first payment date is kept")

	_, err = h.Approval.MarkPaid(ctx, usecases.MarkPaidCommand{RegistrationNumber: "REG9999999"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListFiltersByPayment(t *testing.T) {
	h := testutil.NewHarness(t)
	h.SeedApproval(t, "REG2024001", "Alice", true)
	h.SeedApproval(t, "REG2024002", "Bob", false)
	h.SeedApproval(t, "REG2024003", "Carol", true)

	paid := true
	list, total, err := h.Approval.List(context.Background(), domainApproval.ListFilter{Page: 1, PageSize: 10, IsPaid: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	for _, a := range list {
		assert.True(t, a.IsPaid)
	}

	list, total, err = h.Approval.List(context.Background(), domainApproval.ListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 1)
}
