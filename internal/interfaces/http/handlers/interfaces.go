package handlers

import (
	"context"

	approvaldto "github.com/gohub-app/gohub/internal/application/approval/dto"
	approvalusecases "github.com/gohub-app/gohub/internal/application/approval/usecases"
	"github.com/gohub-app/gohub/internal/application/user/dto"
	"github.com/gohub-app/gohub/internal/application/user/usecases"
	"github.com/gohub-app/gohub/internal/domain/approval"
)

// Service interfaces consumed by the handlers - enables unit testing with mocks.

type authService interface {
	Register(ctx context.Context, cmd usecases.RegisterCommand) (*dto.RegisterOutcome, error)
	Login(ctx context.Context, cmd usecases.LoginCommand) (*dto.LoginOutcome, error)
	Logout(ctx context.Context, cmd usecases.LogoutCommand) (*dto.LogoutOutcome, error)
	RefreshTokens(ctx context.Context, cmd usecases.RefreshTokenCommand) (*dto.RefreshOutcome, error)
}

type profileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	ListDeviceLogs(ctx context.Context, userID string, limit int) ([]*dto.DeviceLogResponse, error)
}

type approvalService interface {
	Add(ctx context.Context, cmd approvalusecases.AddApprovalCommand) (*approvaldto.ApprovalResponse, error)
	BulkAdd(ctx context.Context, cmds []approvalusecases.AddApprovalCommand) (*approvaldto.BulkAddResult, error)
	MarkPaid(ctx context.Context, cmd approvalusecases.MarkPaidCommand) (*approvaldto.ApprovalResponse, error)
	List(ctx context.Context, filter approval.ListFilter) ([]*approvaldto.ApprovalResponse, int64, error)
}
