package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetvault/internal/categories"
	apperrors "assetvault/internal/errors"
)

// CategoryHandler serves the static category registry.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// LabeledOption is an id with its display label.
type LabeledOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryDetailResponse is a category with labeled subcategories and fields.
type CategoryDetailResponse struct {
	categories.Category
	SubcategoryOptions []LabeledOption `json:"subcategoryOptions"`
	FieldOptions       []LabeledOption `json:"fieldOptions"`
}

// ListCategories returns every category in display order
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string]interface{} "Categories"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": categories.All()})
}

// GetCategory returns one category with display labels
// @Summary     Get category
// @Tags        categories
// @Produce     json
// @Param       id path string true "Category ID"
// @Success     200 {object} CategoryDetailResponse "Category"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, ok := categories.Get(c.Param("id"))
	if !ok {
		respondWithError(c, apperrors.ErrCategoryNotFound)
		return
	}

	resp := CategoryDetailResponse{
		Category:           cat,
		SubcategoryOptions: make([]LabeledOption, 0, len(cat.Subcategories)),
		FieldOptions:       make([]LabeledOption, 0, len(cat.Fields)),
	}
	for _, s := range cat.Subcategories {
		resp.SubcategoryOptions = append(resp.SubcategoryOptions, LabeledOption{ID: s, Label: categories.SubcategoryLabel(s)})
	}
	for _, f := range cat.Fields {
		resp.FieldOptions = append(resp.FieldOptions, LabeledOption{ID: f, Label: categories.FieldLabel(f)})
	}

	c.JSON(http.StatusOK, gin.H{"category": resp})
}

// ListConditions returns the selectable asset conditions
// @Summary     List conditions
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string]interface{} "Conditions"
// @Router      /conditions [get]
func (h *CategoryHandler) ListConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conditions": categories.Conditions()})
}
