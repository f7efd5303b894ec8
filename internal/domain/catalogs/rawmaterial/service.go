package rawmaterial

import (
	"context"
	"fmt"
	"time"

	"espetaria/internal/core/tx"
	"espetaria/internal/domain"
	"espetaria/pkg/numerator"
)

// Service provides business logic for the RawMaterial catalog.
type Service struct {
	*domain.CatalogService[*RawMaterial]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new RawMaterial service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*RawMaterial]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "raw material",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *RawMaterial) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("RM"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// FindLowStock retrieves materials with stock at or below their minimum.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*RawMaterial], error) {
	return s.repo.FindLowStock(ctx, filter)
}
