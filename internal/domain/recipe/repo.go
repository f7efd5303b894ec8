package recipe

import (
	"context"

	"espetaria/internal/core/id"
)

// Repository persists recipes with their lines.
type Repository interface {
	// Create stores the recipe header and all lines.
	Create(ctx context.Context, r *Recipe) error

	// GetByID loads the recipe with lines and raw material / supply snapshots.
	GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error)

	// GetActiveByProduct returns the product's active recipe with lines and
	// snapshots, or nil when the product has none. When several recipes
	// exist for the product, the oldest one wins.
	GetActiveByProduct(ctx context.Context, productID id.ID) (*Recipe, error)

	// ListByProduct returns all recipe headers for a product, oldest first.
	ListByProduct(ctx context.Context, productID id.ID) ([]*Recipe, error)

	// SaveLines replaces the recipe's ingredient and supply lines.
	SaveLines(ctx context.Context, r *Recipe) error

	// Delete removes the recipe and its lines.
	Delete(ctx context.Context, recipeID id.ID) error
}

// Reader is the narrow read surface the production engine needs.
type Reader interface {
	GetActiveByProduct(ctx context.Context, productID id.ID) (*Recipe, error)
}
