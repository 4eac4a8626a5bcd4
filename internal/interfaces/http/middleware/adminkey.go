package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
	"github.com/gohub-app/gohub/internal/shared/utils"
)

// AdminKey guards allow-list management with a shared X-Admin-Key secret.
// An unset key is a server misconfiguration and fails every request.
func AdminKey(key string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			log.Errorw("admin key not configured", "path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, errors.NewInternalError("Admin API key not configured"))
			c.Abort()
			return
		}

		provided := c.GetHeader(constants.HeaderAdminKey)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			log.Warnw("rejected admin request", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Invalid admin API key"))
			c.Abort()
			return
		}

		c.Next()
	}
}
