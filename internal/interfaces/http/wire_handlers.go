package http

import (
	"github.com/gohub-app/gohub/internal/interfaces/http/handlers"
	"github.com/gohub-app/gohub/internal/shared/version"
)

// allHandlers holds the HTTP handlers.
type allHandlers struct {
	authHandler     *handlers.AuthHandler
	profileHandler  *handlers.ProfileHandler
	approvalHandler *handlers.ApprovalHandler
	healthHandler   *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		authHandler:     handlers.NewAuthHandler(c.authService, c.log),
		profileHandler:  handlers.NewProfileHandler(c.authService, c.log),
		approvalHandler: handlers.NewApprovalHandler(c.approvalService, c.log),
		healthHandler:   handlers.NewHealthHandler(gormPinger{c.db}, version.Current(), c.log),
	}
}
