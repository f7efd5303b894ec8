package supply

import (
	"context"
	"fmt"
	"time"

	"espetaria/internal/core/id"
	"espetaria/internal/core/tx"
	"espetaria/internal/domain"
	"espetaria/pkg/logger"
	"espetaria/pkg/numerator"
)

// Service provides business logic for the Supply catalog and its sub-recipes.
type Service struct {
	*domain.CatalogService[*Supply]
	repo      Repository
	txManager tx.Manager
	numerator numerator.Generator
}

// NewService creates a new Supply service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supply]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "supply",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Supply) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// GetRecipe retrieves the sub-recipe of a supply, or nil for simple supplies.
func (s *Service) GetRecipe(ctx context.Context, supplyID id.ID) (*SupplyRecipe, error) {
	if _, err := s.GetByID(ctx, supplyID); err != nil {
		return nil, err
	}
	return s.repo.GetRecipe(ctx, supplyID)
}

// SaveRecipe creates or replaces the sub-recipe of a supply, turning it
// into a compound supply.
func (s *Service) SaveRecipe(ctx context.Context, recipe *SupplyRecipe) error {
	if err := recipe.Validate(ctx); err != nil {
		return err
	}

	if _, err := s.GetByID(ctx, recipe.SupplyID); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveRecipe(ctx, recipe)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "supply recipe saved",
		"supply_id", recipe.SupplyID,
		"yield", recipe.YieldAmount,
		"items", len(recipe.Items),
	)
	return nil
}

// DeleteRecipe removes the sub-recipe of a supply, making it simple again.
func (s *Service) DeleteRecipe(ctx context.Context, supplyID id.ID) error {
	if _, err := s.GetByID(ctx, supplyID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.DeleteRecipe(ctx, supplyID)
	})
}

// FindLowStock retrieves supplies with stock at or below their minimum.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supply], error) {
	return s.repo.FindLowStock(ctx, filter)
}
