package rawmaterial

import (
	"context"

	"espetaria/internal/domain"
)

// Repository defines the interface for RawMaterial persistence.
type Repository interface {
	domain.CatalogRepository[*RawMaterial]

	// FindLowStock retrieves materials with stock at or below their minimum.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*RawMaterial], error)
}
