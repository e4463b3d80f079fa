package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/identity"
	"assetvault/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// identityFromContext returns the caller's identity, or nil on routes
// served without authentication. A nil identity maps to the guest namespace.
func identityFromContext(c *gin.Context) *identity.Identity {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return nil
	}
	return &identity.Identity{ID: userID, Email: c.GetString(middleware.EmailKey)}
}

// tokenFromContext returns the id and expiry of the token that authenticated the request.
func tokenFromContext(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.TokenIDKey), c.GetTime(middleware.TokenExpiresAtKey)
}

// flagBody renders a store error flag for inclusion in a response, or nil.
func flagBody(err error) gin.H {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return gin.H{"code": appErr.Code, "message": appErr.Message}
	}
	return gin.H{"code": apperrors.ErrInternalServer.Code, "message": apperrors.ErrInternalServer.Message}
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
