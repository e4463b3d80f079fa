package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetvault/internal/categories"
	apperrors "assetvault/internal/errors"
	"assetvault/internal/identity"
	"assetvault/internal/models"
	"assetvault/internal/pagination"
	"assetvault/internal/portfolio"
	"assetvault/internal/services"
)

// AssetHandler handles asset requests. The same handlers serve the
// authenticated routes and the guest routes; the namespace follows from
// whether the request carries an identity.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
	recentLimit  int
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer, recentLimit int) *AssetHandler {
	if recentLimit <= 0 {
		recentLimit = portfolio.DefaultRecentLimit
	}
	return &AssetHandler{assetService: assetService, auditService: auditService, recentLimit: recentLimit}
}

// RegisterAssetRoutes mounts the asset routes on g. The server mounts them
// twice: behind authentication and, for the guest namespace, without it.
func RegisterAssetRoutes(g *gin.RouterGroup, h *AssetHandler) {
	g.GET("/assets", h.ListAssets)
	g.POST("/assets", h.CreateAsset)
	g.GET("/assets/state", h.GetState)
	g.DELETE("/assets/error", h.ClearError)
	g.GET("/assets/summary", h.GetSummary)
	g.GET("/assets/recent", h.GetRecent)
	g.GET("/assets/categories", h.GetCategoryStats)
	g.GET("/assets/favorites/stats", h.GetFavoritesStats)
	g.POST("/assets/revalue", h.Revalue)
	g.GET("/assets/:id", h.GetAsset)
	g.GET("/assets/:id/fields", h.GetEditableFields)
	g.PATCH("/assets/:id", h.UpdateAsset)
	g.DELETE("/assets/:id", h.DeleteAsset)
	g.POST("/assets/:id/favorite", h.ToggleFavorite)
	g.PUT("/assets/:id/value", h.SetValue)
	g.POST("/assets/:id/photos", h.AddPhotos)
	g.DELETE("/assets/:id/photos/:photoId", h.RemovePhoto)
}

// ListAssetsQuery holds the filter, sort and pagination query parameters.
type ListAssetsQuery struct {
	Category    string   `form:"category"`
	Subcategory string   `form:"subcategory"`
	Search      string   `form:"search" binding:"max=200"`
	Tags        []string `form:"tags"`
	Favorites   bool     `form:"favorites"`
	MinValue    *float64 `form:"minValue"`
	MaxValue    *float64 `form:"maxValue"`
	SortBy      string   `form:"sortBy" binding:"omitempty,sort_key"`
	pagination.PageRequest
}

func (q *ListAssetsQuery) criteria() portfolio.Criteria {
	return portfolio.Criteria{
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Search:      q.Search,
		Tags:        q.Tags,
		Favorites:   q.Favorites,
		MinValue:    q.MinValue,
		MaxValue:    q.MaxValue,
		SortBy:      portfolio.SortKey(q.SortBy),
	}
}

// SetValueRequest represents the payload for recording a new current value.
type SetValueRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// AddPhotosRequest represents the payload for attaching photos.
type AddPhotosRequest struct {
	Photos []models.Photo `json:"photos" binding:"required,min=1,max=20"`
}

// AssetResponse wraps an asset with the store's error flag.
type AssetResponse struct {
	Asset models.Asset `json:"asset"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// audit records an asset mutation. Guest mutations have no user to attribute
// them to and are not audited.
func (h *AssetHandler) audit(c *gin.Context, ident *identity.Identity, action, assetID string, changes map[string]any) {
	if ident.IsGuest() {
		return
	}
	h.auditService.Log(services.AuditEntry{
		UserID:       ident.Key(),
		Action:       action,
		ResourceType: "asset",
		ResourceID:   assetID,
		IPAddress:    c.ClientIP(),
		Changes:      changes,
	})
}

// respondWithAsset writes an asset mutation result. Unknown ids are not an
// error: the collection is unchanged and updated is false.
func (h *AssetHandler) respondWithAsset(c *gin.Context, ident *identity.Identity, status int, asset *models.Asset, updated bool) {
	flag := flagBody(h.assetService.StoreError(ident))
	if !updated {
		c.JSON(http.StatusOK, gin.H{"updated": false, "error": flag})
		return
	}
	c.JSON(status, gin.H{"asset": asset, "updated": true, "error": flag})
}

// GetState returns the namespace, loading flag and error flag of the caller's collection
// @Summary     Collection state
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Namespace, loading, error, asset count"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /assets/state [get]
func (h *AssetHandler) GetState(c *gin.Context) {
	snap, err := h.assetService.Snapshot(identityFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"namespace":  snap.Namespace,
		"loading":    snap.Loading,
		"assetCount": len(snap.Assets),
		"error":      flagBody(snap.Error),
	})
}

// ListAssets returns the filtered, sorted assets of the caller
// @Summary     List assets
// @Description Filter by category, subcategory, free text, tags, favorites and value range; sort and paginate
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Category id"
// @Param       subcategory query string false "Subcategory id"
// @Param       search query string false "Matches name, make, model or brand"
// @Param       tags query []string false "Matches any tag"
// @Param       favorites query bool false "Only favorites"
// @Param       minValue query number false "Minimum current value"
// @Param       maxValue query number false "Maximum current value"
// @Param       sortBy query string false "value_desc, value_asc, name_asc, name_desc, date_desc, date_asc, performance"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var q ListAssetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ident := identityFromContext(c)
	assets, err := h.assetService.ListAssets(ident, q.criteria())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": pagination.Paginate(assets, q.PageRequest),
		"error":  flagBody(h.assetService.StoreError(ident)),
	})
}

// GetAsset returns one asset
// @Summary     Get asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} AssetResponse "Asset"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	ident := identityFromContext(c)
	asset, err := h.assetService.GetAsset(ident, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset, "error": flagBody(h.assetService.StoreError(ident))})
}

// GetEditableFields returns the detail fields the asset's category declares,
// with their current values
// @Summary     Editable detail fields
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string]interface{} "Fields"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id}/fields [get]
func (h *AssetHandler) GetEditableFields(c *gin.Context) {
	asset, err := h.assetService.GetAsset(identityFromContext(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": categories.EditableFields(asset.Category, asset.Details)})
}

// CreateAsset adds an asset to the caller's collection
// @Summary     Create asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body models.AssetDraft true "Asset details"
// @Success     201 {object} AssetResponse "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var draft models.AssetDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ident := identityFromContext(c)
	asset, err := h.assetService.AddAsset(ident, draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit(c, ident, "CREATE_ASSET", asset.ID, map[string]any{
		"name":     asset.Name,
		"category": asset.Category,
		"value":    asset.CurrentValue,
	})

	h.respondWithAsset(c, ident, http.StatusCreated, asset, true)
}

// UpdateAsset merges changes into an asset
// @Summary     Update asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       request body models.AssetPatch true "Fields to change"
// @Success     200 {object} AssetResponse "Updated asset, or updated=false for an unknown id"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets/{id} [patch]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var patch models.AssetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if patch.IsEmpty() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update"))
		return
	}

	ident := identityFromContext(c)
	asset, updated, err := h.assetService.UpdateAsset(ident, c.Param("id"), patch)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if updated {
		h.audit(c, ident, "UPDATE_ASSET", asset.ID, nil)
	}

	h.respondWithAsset(c, ident, http.StatusOK, asset, updated)
}

// DeleteAsset removes an asset
// @Summary     Delete asset
// @Tags        assets
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     204 "Deleted, or nothing to delete"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	ident := identityFromContext(c)
	assetID := c.Param("id")
	removed, err := h.assetService.DeleteAsset(ident, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if removed {
		h.audit(c, ident, "DELETE_ASSET", assetID, nil)
	}
	c.Status(http.StatusNoContent)
}

// ToggleFavorite flips an asset's favorite flag
// @Summary     Toggle favorite
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} AssetResponse "Updated asset"
// @Router      /assets/{id}/favorite [post]
func (h *AssetHandler) ToggleFavorite(c *gin.Context) {
	ident := identityFromContext(c)
	asset, updated, err := h.assetService.ToggleFavorite(ident, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithAsset(c, ident, http.StatusOK, asset, updated)
}

// SetValue records a new current value
// @Summary     Update current value
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       request body SetValueRequest true "New value"
// @Success     200 {object} AssetResponse "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid value"
// @Router      /assets/{id}/value [put]
func (h *AssetHandler) SetValue(c *gin.Context) {
	var req SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ident := identityFromContext(c)
	asset, updated, err := h.assetService.UpdateAssetValue(ident, c.Param("id"), *req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if updated {
		h.audit(c, ident, "UPDATE_ASSET_VALUE", asset.ID, map[string]any{"value": *req.Value})
	}

	h.respondWithAsset(c, ident, http.StatusOK, asset, updated)
}

// AddPhotos attaches photos to an asset
// @Summary     Add photos
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       request body AddPhotosRequest true "Photos"
// @Success     200 {object} AssetResponse "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets/{id}/photos [post]
func (h *AssetHandler) AddPhotos(c *gin.Context) {
	var req AddPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ident := identityFromContext(c)
	asset, updated, err := h.assetService.AddPhotos(ident, c.Param("id"), req.Photos)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithAsset(c, ident, http.StatusOK, asset, updated)
}

// RemovePhoto detaches a photo from an asset
// @Summary     Remove photo
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       photoId path string true "Photo ID"
// @Success     200 {object} AssetResponse "Updated asset"
// @Router      /assets/{id}/photos/{photoId} [delete]
func (h *AssetHandler) RemovePhoto(c *gin.Context) {
	ident := identityFromContext(c)
	asset, updated, err := h.assetService.RemovePhoto(ident, c.Param("id"), c.Param("photoId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithAsset(c, ident, http.StatusOK, asset, updated)
}

// GetSummary returns the portfolio summary
// @Summary     Portfolio summary
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} portfolio.Summary "Summary"
// @Router      /assets/summary [get]
func (h *AssetHandler) GetSummary(c *gin.Context) {
	ident := identityFromContext(c)
	summary, err := h.assetService.Summary(ident)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "error": flagBody(h.assetService.StoreError(ident))})
}

// GetRecent returns the most recently updated assets
// @Summary     Recent assets
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of assets (default 5)"
// @Success     200 {object} map[string]interface{} "Assets"
// @Router      /assets/recent [get]
func (h *AssetHandler) GetRecent(c *gin.Context) {
	var q struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if q.Limit == 0 {
		q.Limit = h.recentLimit
	}

	assets, err := h.assetService.RecentAssets(identityFromContext(c), q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetCategoryStats returns per-category aggregates
// @Summary     Category statistics
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Stats for every category"
// @Router      /assets/categories [get]
func (h *AssetHandler) GetCategoryStats(c *gin.Context) {
	stats, err := h.assetService.CategoryStats(identityFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": stats})
}

// GetFavoritesStats returns aggregates over favorited assets
// @Summary     Favorites statistics
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} portfolio.FavoritesSummary "Favorites stats"
// @Router      /assets/favorites/stats [get]
func (h *AssetHandler) GetFavoritesStats(c *gin.Context) {
	stats, err := h.assetService.FavoritesStats(identityFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": stats})
}

// Revalue applies depreciation estimates to the caller's assets
// @Summary     Revalue assets
// @Description Re-estimate current values from each category's yearly depreciation rate
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       dryRun query bool false "Compute without saving"
// @Success     200 {object} revaluer.RunResult "Run result"
// @Router      /assets/revalue [post]
func (h *AssetHandler) Revalue(c *gin.Context) {
	var q struct {
		DryRun bool `form:"dryRun"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ident := identityFromContext(c)
	result, err := h.assetService.Revalue(c.Request.Context(), ident, q.DryRun)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !q.DryRun && result.ValuesUpdated > 0 {
		h.audit(c, ident, "REVALUE_ASSETS", "", map[string]any{"updated": result.ValuesUpdated})
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ClearError resets the store's error flag
// @Summary     Dismiss storage error
// @Tags        assets
// @Security    BearerAuth
// @Success     204 "Cleared"
// @Router      /assets/error [delete]
func (h *AssetHandler) ClearError(c *gin.Context) {
	if err := h.assetService.ClearError(identityFromContext(c)); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
