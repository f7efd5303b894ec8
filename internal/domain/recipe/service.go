package recipe

import (
	"context"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/tx"
	"espetaria/pkg/logger"
)

// ProductReader checks product existence without importing the full
// product service.
type ProductReader interface {
	Exists(ctx context.Context, productID id.ID) error
}

// Service provides business logic for product recipes.
type Service struct {
	repo      Repository
	products  ProductReader
	txManager tx.Manager
}

// NewService creates a new recipe service.
func NewService(repo Repository, products ProductReader, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
	}
}

// Create validates and stores a new recipe with its lines.
func (s *Service) Create(ctx context.Context, r *Recipe) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}

	if err := s.products.Exists(ctx, r.ProductID); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, r)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "recipe created",
		"recipe_id", r.ID,
		"product_id", r.ProductID,
		"lines", len(r.Lines),
		"supply_lines", len(r.SupplyLines),
	)
	return nil
}

// GetByID retrieves a recipe with all lines.
func (s *Service) GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error) {
	r, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperror.NewNotFound("recipe", recipeID)
	}
	return r, nil
}

// GetActiveByProduct returns the recipe the production engine will use for
// the product, or nil when the product has none.
func (s *Service) GetActiveByProduct(ctx context.Context, productID id.ID) (*Recipe, error) {
	if err := s.products.Exists(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.GetActiveByProduct(ctx, productID)
}

// ListByProduct returns all recipes registered for a product, oldest first.
func (s *Service) ListByProduct(ctx context.Context, productID id.ID) ([]*Recipe, error) {
	if err := s.products.Exists(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(ctx, productID)
}

// UpdateLines replaces the lines of an existing recipe.
func (s *Service) UpdateLines(ctx context.Context, r *Recipe) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}

	if _, err := s.GetByID(ctx, r.ID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveLines(ctx, r)
	})
}

// Delete removes a recipe and its lines.
func (s *Service) Delete(ctx context.Context, recipeID id.ID) error {
	if _, err := s.GetByID(ctx, recipeID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, recipeID)
	})
}
