// Package product provides the finished product catalog.
package product

import (
	"context"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/types"
)

// Product represents a finished product manufactured by the business.
// CurrentStock is maintained exclusively by the production engine and
// explicit adjustment flows; it is signed and may go negative.
type Product struct {
	entity.Catalog

	// CurrentStock in produced units
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`

	// SalePrice is informational for the back office listing
	SalePrice types.Quantity `db:"sale_price" json:"salePrice"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// Active indicates the product can still be produced and sold
	Active bool `db:"active" json:"active"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string) *Product {
	return &Product{
		Catalog:      entity.NewCatalog(code, name),
		CurrentStock: types.ZeroQuantity(),
		SalePrice:    types.ZeroQuantity(),
		Active:       true,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	// CurrentStock is intentionally unconstrained: negative stock is an
	// accepted business state.

	return nil
}
