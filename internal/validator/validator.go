// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"assetvault/internal/categories"
	"assetvault/internal/models"
	"assetvault/internal/portfolio"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_category", validateAssetCategory)
		_ = v.RegisterValidation("asset_condition", validateAssetCondition)
		_ = v.RegisterValidation("sort_key", validateSortKey)
	}
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	return categories.IsValid(fl.Field().String())
}

func validateAssetCondition(fl validator.FieldLevel) bool {
	return models.Condition(fl.Field().String()).Valid()
}

func validateSortKey(fl validator.FieldLevel) bool {
	return portfolio.SortKey(fl.Field().String()).Valid()
}
