package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/infrastructure/ratelimit"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// RateLimit enforces per-client-IP limits. If the limiter fails the request is
// let through so a Redis outage does not take the API down.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"error":       "Rate limit exceeded",
				"message":     constants.ErrMsgRateLimited,
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
