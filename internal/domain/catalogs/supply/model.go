// Package supply provides the reusable supply catalog and its sub-recipes.
package supply

import (
	"context"
	"time"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

// Supply represents a reusable supply (lids, sticks, boxes, packaging).
// A supply may be compound: manufactured from other supplies according to
// an attached SupplyRecipe.
type Supply struct {
	entity.Catalog

	// Unit is the supply's own display unit ("un", "g", "ml")
	Unit string `db:"unit" json:"unit"`

	// CurrentStock in the supply's own unit, signed; may go negative
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`

	// MinimumStock triggers low-stock listings
	MinimumStock types.Quantity `db:"minimum_stock" json:"minimumStock"`
}

// NewSupply creates a new Supply with required fields.
func NewSupply(code, name, unit string) *Supply {
	return &Supply{
		Catalog:      entity.NewCatalog(code, name),
		Unit:         unit,
		CurrentStock: types.ZeroQuantity(),
		MinimumStock: types.ZeroQuantity(),
	}
}

// Validate implements entity.Validatable.
func (s *Supply) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	return nil
}

// Ref is a read-time snapshot of a supply (id, name, unit, stock level).
// Used where lines resolve to a supply without loading the full catalog row.
type Ref struct {
	ID           id.ID          `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Unit         string         `db:"unit" json:"unit"`
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`
}

// SupplyRecipe is the optional sub-recipe attached to a compound supply.
// One batch of the sub-recipe yields YieldAmount units of the parent supply.
type SupplyRecipe struct {
	ID        id.ID     `db:"id" json:"id"`
	SupplyID  id.ID     `db:"supply_id" json:"supplyId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// YieldAmount is how many units of the parent supply one batch produces
	YieldAmount types.Quantity `db:"yield_amount" json:"yieldAmount"`

	// Items are the ingredient supplies consumed per batch
	Items []SupplyRecipeItem `db:"-" json:"items"`
}

// NewSupplyRecipe creates a sub-recipe for the given supply.
func NewSupplyRecipe(supplyID id.ID, yieldAmount types.Quantity) *SupplyRecipe {
	return &SupplyRecipe{
		ID:          id.New(),
		SupplyID:    supplyID,
		CreatedAt:   time.Now().UTC(),
		YieldAmount: yieldAmount,
	}
}

// Validate implements entity.Validatable.
func (r *SupplyRecipe) Validate(ctx context.Context) error {
	if id.IsNil(r.SupplyID) {
		return apperror.NewValidation("supply is required").
			WithDetail("field", "supplyId")
	}

	if !r.YieldAmount.IsPositive() {
		return apperror.NewValidation("yield amount must be positive").
			WithDetail("field", "yieldAmount")
	}

	if len(r.Items) == 0 {
		return apperror.NewValidation("at least one ingredient supply is required").
			WithDetail("field", "items")
	}

	for i, item := range r.Items {
		if id.IsNil(item.IngredientID) {
			return apperror.NewValidation("ingredient supply is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.IngredientID == r.SupplyID {
			return apperror.NewValidation("supply cannot be an ingredient of its own sub-recipe").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if !item.Quantity.IsPositive() {
			return apperror.NewValidation("ingredient quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// SupplyRecipeItem is a line of a supply sub-recipe: the amount of an
// ingredient supply consumed per one batch of the parent's sub-recipe.
type SupplyRecipeItem struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	IngredientID id.ID          `db:"ingredient_id" json:"ingredientId"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	Unit         string         `db:"unit" json:"unit"`

	// Ingredient snapshot, populated on read
	Ingredient Ref `db:"-" json:"ingredient"`
}

// AddItem appends an ingredient line to the sub-recipe.
func (r *SupplyRecipe) AddItem(ingredientID id.ID, quantity types.Quantity, unit string) {
	r.Items = append(r.Items, SupplyRecipeItem{
		LineID:       id.New(),
		LineNo:       len(r.Items) + 1,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
	})
}
