package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"assetvault/internal/id"
	"assetvault/internal/logger"
)

// RequestIDKey is the context key holding the request id.
const RequestIDKey = "requestID"

const maxRequestIDLen = 64

// RequestLogging assigns each request an id, echoed in X-Request-ID, and logs
// the completed request. A caller-supplied X-Request-ID is kept when it is
// short enough. Client errors log at warn, server errors at error.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = id.New()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := append(requestFields(c),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)

		log := logger.Get()
		switch {
		case status >= 500:
			log.Errorw("request", fields...)
		case status >= 400:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
