package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
)

// MaintenanceAuthMiddleware validates the X-API-Key header against the
// configured maintenance key. Scheduled jobs such as revaluation
// authenticate this way instead of with a user token. An empty key disables
// the routes it guards.
func MaintenanceAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			AbortWithError(c, apperrors.ErrMaintenanceDisabled)
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			AbortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
