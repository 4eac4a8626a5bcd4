package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/application/approval/usecases"
	"github.com/gohub-app/gohub/internal/domain/approval"
	reqdto "github.com/gohub-app/gohub/internal/interfaces/dto"
	"github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// ApprovalHandler manages the allow-list. Routes sit behind the admin key.
type ApprovalHandler struct {
	approvals approvalService
	logger    logger.Interface
}

func NewApprovalHandler(approvals approvalService, logger logger.Interface) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals, logger: logger}
}

// Add handles POST /api/admin/approvals
func (h *ApprovalHandler) Add(c *gin.Context) {
	var req reqdto.AddApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	resp, err := h.approvals.Add(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "Approval added successfully")
}

// BulkAdd handles POST /api/admin/approvals/bulk. Bad rows are reported in
// the result, not as a request failure.
func (h *ApprovalHandler) BulkAdd(c *gin.Context) {
	var req reqdto.BulkAddApprovalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.approvals.BulkAdd(c.Request.Context(), req.ToCommands())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Added %d approvals", len(result.Succeeded)), result)
}

// MarkPaid handles PUT /api/admin/approvals/:number/payment
func (h *ApprovalHandler) MarkPaid(c *gin.Context) {
	var req reqdto.MarkPaidRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
			return
		}
	}

	resp, err := h.approvals.MarkPaid(c.Request.Context(), usecases.MarkPaidCommand{
		RegistrationNumber: c.Param("number"),
		PaymentDate:        req.PaymentDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment recorded", resp)
}

// List handles GET /api/admin/approvals?page=&page_size=&is_paid=
func (h *ApprovalHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := approval.ListFilter{Page: p.Page, PageSize: p.PageSize}

	if raw := c.Query("is_paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("is_paid must be a boolean"))
			return
		}
		filter.IsPaid = &paid
	}

	items, total, err := h.approvals.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, p)
}
