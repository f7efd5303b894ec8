// Package rawmaterial provides the raw material catalog.
package rawmaterial

import (
	"context"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/types"
)

// RawMaterial represents an ingredient consumed by product recipes.
// Stock is kept in kilograms regardless of the display unit; recipe rates
// are expressed in grams per produced unit and converted at calculation time.
type RawMaterial struct {
	entity.Catalog

	// CurrentStock in kilograms, signed; may go negative
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`

	// Unit is the display unit shown in the back office (e.g. "kg", "g")
	Unit string `db:"unit" json:"unit"`

	// MinimumStock triggers low-stock listings, in kilograms
	MinimumStock types.Quantity `db:"minimum_stock" json:"minimumStock"`
}

// NewRawMaterial creates a new RawMaterial with required fields.
func NewRawMaterial(code, name string) *RawMaterial {
	return &RawMaterial{
		Catalog:      entity.NewCatalog(code, name),
		CurrentStock: types.ZeroQuantity(),
		Unit:         "kg",
		MinimumStock: types.ZeroQuantity(),
	}
}

// Validate implements entity.Validatable.
func (m *RawMaterial) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if m.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	if m.MinimumStock.IsNegative() {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minimumStock")
	}

	return nil
}
