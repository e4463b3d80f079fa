package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/identity"
	"assetvault/internal/services"
)

// MaintenanceHandler serves endpoints for scheduled jobs.
type MaintenanceHandler struct {
	assetService services.AssetServicer
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(assetService services.AssetServicer) *MaintenanceHandler {
	return &MaintenanceHandler{assetService: assetService}
}

// RevalueRequest names the namespace to revalue. All identity fields empty
// selects the guest namespace.
type RevalueRequest struct {
	UserID string `json:"user_id" binding:"max=64"`
	UID    string `json:"uid" binding:"max=128"`
	Email  string `json:"email" binding:"omitempty,email"`
	DryRun bool   `json:"dry_run"`
}

// Revalue applies depreciation estimates to one namespace
// @Summary     Revalue a namespace
// @Tags        maintenance
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Maintenance API key"
// @Param       request body RevalueRequest true "Namespace identity"
// @Success     200 {object} revaluer.RunResult "Run result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /maintenance/revalue [post]
func (h *MaintenanceHandler) Revalue(c *gin.Context) {
	var req RevalueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ident := &identity.Identity{ID: req.UserID, UID: req.UID, Email: req.Email}
	result, err := h.assetService.Revalue(c.Request.Context(), ident, req.DryRun)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
