package supply

import (
	"context"

	"espetaria/internal/core/id"
	"espetaria/internal/domain"
)

// Repository defines the interface for Supply persistence.
type Repository interface {
	domain.CatalogRepository[*Supply]

	// GetRecipe retrieves the sub-recipe attached to a supply, with item
	// lines and ingredient snapshots. Returns (nil, nil) when the supply
	// is simple (has no sub-recipe).
	GetRecipe(ctx context.Context, supplyID id.ID) (*SupplyRecipe, error)

	// SaveRecipe creates or replaces the sub-recipe of a supply.
	SaveRecipe(ctx context.Context, recipe *SupplyRecipe) error

	// DeleteRecipe removes the sub-recipe of a supply, making it simple again.
	DeleteRecipe(ctx context.Context, supplyID id.ID) error

	// FindLowStock retrieves supplies with stock at or below their minimum.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supply], error)
}

// RecipeSource resolves sub-recipes during compound supply expansion.
// The production engine depends on this narrow read-only view.
type RecipeSource interface {
	GetRecipe(ctx context.Context, supplyID id.ID) (*SupplyRecipe, error)
}
