package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/logger"
)

// RespondError renders err as {"error":{"code","message"}}. AppErrors keep
// their status and code; any other error is logged and reported as
// INTERNAL_ERROR so details never reach the client.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error", append(requestFields(c), "error", err.Error())...)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		fields := append(requestFields(c), "code", appErr.Code, "internal", appErr.Internal.Error())
		if appErr.StatusCode >= 500 {
			logger.Get().Errorw("app error", fields...)
		} else {
			logger.Get().Warnw("app error", fields...)
		}
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// AbortWithError renders err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}

// ErrorHandler renders the last error attached with c.Error when the
// handler chain finished without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RespondError(c, c.Errors.Last().Err)
	}
}

// requestFields returns the log fields identifying the current request.
func requestFields(c *gin.Context) []any {
	fields := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if id := c.GetString(RequestIDKey); id != "" {
		fields = append(fields, "request_id", id)
	}
	if uid := c.GetString(UserIDKey); uid != "" {
		fields = append(fields, "user_id", uid)
	}
	return fields
}
