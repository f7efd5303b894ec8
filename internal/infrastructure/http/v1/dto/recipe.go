package dto

import (
	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/recipe"
)

// CreateRecipeRequest creates a recipe for a product.
type CreateRecipeRequest struct {
	ProductID   string                 `json:"productId" binding:"required"`
	Lines       []IngredientLineInput  `json:"lines" binding:"required,min=1"`
	SupplyLines []RecipeSupplyLineInput `json:"supplyLines"`
	CreatedBy   string                 `json:"createdBy"`
}

// IngredientLineInput is one raw material line of a recipe.
type IngredientLineInput struct {
	RawMaterialID string         `json:"rawMaterialId" binding:"required"`
	GramsPerUnit  types.Quantity `json:"gramsPerUnit" binding:"required"`
}

// RecipeSupplyLineInput is one supply line of a recipe.
type RecipeSupplyLineInput struct {
	SupplyID string         `json:"supplyId" binding:"required"`
	PerUnit  types.Quantity `json:"perUnit" binding:"required"`
}

// ToEntity builds a Recipe from the request.
func (r *CreateRecipeRequest) ToEntity() (*recipe.Recipe, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId")
	}

	rcp := recipe.NewRecipe(productID)
	rcp.CreatedBy = r.CreatedBy
	rcp.UpdatedBy = r.CreatedBy

	for i, line := range r.Lines {
		rawMaterialID, err := id.Parse(line.RawMaterialID)
		if err != nil {
			return nil, apperror.NewValidation("invalid raw material id").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		rcp.AddLine(rawMaterialID, line.GramsPerUnit)
	}

	for i, line := range r.SupplyLines {
		supplyID, err := id.Parse(line.SupplyID)
		if err != nil {
			return nil, apperror.NewValidation("invalid supply id").
				WithDetail("field", "supplyLines").
				WithDetail("lineNo", i+1)
		}
		rcp.AddSupplyLine(supplyID, line.PerUnit)
	}

	return rcp, nil
}

// UpdateRecipeLinesRequest replaces the line set of an existing recipe.
type UpdateRecipeLinesRequest struct {
	Lines       []IngredientLineInput   `json:"lines" binding:"required,min=1"`
	SupplyLines []RecipeSupplyLineInput `json:"supplyLines"`
	UpdatedBy   string                  `json:"updatedBy"`
}

// ApplyTo replaces the entity's lines with the request lines.
func (r *UpdateRecipeLinesRequest) ApplyTo(rcp *recipe.Recipe) error {
	rcp.Lines = nil
	rcp.SupplyLines = nil

	for i, line := range r.Lines {
		rawMaterialID, err := id.Parse(line.RawMaterialID)
		if err != nil {
			return apperror.NewValidation("invalid raw material id").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		rcp.AddLine(rawMaterialID, line.GramsPerUnit)
	}

	for i, line := range r.SupplyLines {
		supplyID, err := id.Parse(line.SupplyID)
		if err != nil {
			return apperror.NewValidation("invalid supply id").
				WithDetail("field", "supplyLines").
				WithDetail("lineNo", i+1)
		}
		rcp.AddSupplyLine(supplyID, line.PerUnit)
	}

	if r.UpdatedBy != "" {
		rcp.UpdatedBy = r.UpdatedBy
	}
	return nil
}
