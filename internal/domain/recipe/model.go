// Package recipe provides product recipes (bill of materials).
package recipe

import (
	"context"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/supply"
)

// Recipe is the formula for producing one unit of a product: the raw
// material ingredient lines plus the supply lines.
//
// A product has at most one recipe considered active; if the storage model
// holds several, the oldest is used and the rest are ignored.
type Recipe struct {
	entity.BaseDocument

	ProductID id.ID `db:"product_id" json:"productId"`

	// Lines are the raw material ingredients
	Lines []IngredientLine `db:"-" json:"lines"`

	// SupplyLines are the supplies consumed per produced unit
	SupplyLines []SupplyLine `db:"-" json:"supplyLines"`
}

// NewRecipe creates a recipe for the given product.
func NewRecipe(productID id.ID) *Recipe {
	return &Recipe{
		BaseDocument: entity.NewBaseDocument(),
		ProductID:    productID,
	}
}

// Validate implements entity.Validatable.
// A recipe with zero ingredient lines is not usable for production.
func (r *Recipe) Validate(ctx context.Context) error {
	if id.IsNil(r.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one ingredient line is required").
			WithDetail("field", "lines")
	}

	for i, line := range r.Lines {
		if id.IsNil(line.RawMaterialID) {
			return apperror.NewValidation("raw material is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.GramsPerUnit.IsPositive() {
			return apperror.NewValidation("grams per unit must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	for i, line := range r.SupplyLines {
		if !line.PerUnit.IsPositive() {
			return apperror.NewValidation("quantity per unit must be positive").
				WithDetail("field", "supplyLines").
				WithDetail("lineNo", i+1)
		}
		// SupplyID may be nil: legacy unlinked rows are tolerated and
		// skipped by the production engine.
	}

	return nil
}

// Usable reports whether the recipe can drive a production (has ingredients).
func (r *Recipe) Usable() bool {
	return len(r.Lines) > 0
}

// AddLine appends a raw material ingredient line.
func (r *Recipe) AddLine(rawMaterialID id.ID, gramsPerUnit types.Quantity) {
	r.Lines = append(r.Lines, IngredientLine{
		LineID:        id.New(),
		LineNo:        len(r.Lines) + 1,
		RawMaterialID: rawMaterialID,
		GramsPerUnit:  gramsPerUnit,
	})
}

// AddSupplyLine appends a supply line.
func (r *Recipe) AddSupplyLine(supplyID id.ID, perUnit types.Quantity) {
	sid := supplyID
	r.SupplyLines = append(r.SupplyLines, SupplyLine{
		LineID:   id.New(),
		LineNo:   len(r.SupplyLines) + 1,
		SupplyID: &sid,
		PerUnit:  perUnit,
	})
}

// IngredientLine references a raw material with its per-unit consumption
// rate in grams, regardless of the raw material's display unit.
type IngredientLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	RawMaterialID id.ID          `db:"raw_material_id" json:"rawMaterialId"`
	GramsPerUnit  types.Quantity `db:"grams_per_unit" json:"gramsPerUnit"`

	// Raw material snapshot, populated on read
	RawMaterialName  string         `db:"raw_material_name" json:"rawMaterialName,omitempty"`
	RawMaterialStock types.Quantity `db:"raw_material_stock" json:"rawMaterialStock"`
}

// SupplyLine references a supply with its per-unit consumption rate in the
// supply's display unit. SupplyID is nullable: legacy rows that no longer
// resolve to a supply are kept but ignored by the engine, and Resolved is
// nil for them.
type SupplyLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	SupplyID *id.ID         `db:"supply_id" json:"supplyId,omitempty"`
	PerUnit  types.Quantity `db:"per_unit" json:"perUnit"`

	// Resolved supply snapshot, populated on read; nil for unlinked rows
	Resolved *supply.Ref `db:"-" json:"resolved,omitempty"`
}
