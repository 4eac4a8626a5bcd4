package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/interfaces/http/middleware"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// ProfileHandler serves read-only views of the current user.
type ProfileHandler struct {
	users  profileService
	logger logger.Interface
}

func NewProfileHandler(users profileService, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{users: users, logger: logger}
}

// GetProfile handles GET /api/users/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

// ListDevices handles GET /api/users/devices?limit=N, newest entries first.
func (h *ProfileHandler) ListDevices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.users.ListDeviceLogs(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entries)
}
