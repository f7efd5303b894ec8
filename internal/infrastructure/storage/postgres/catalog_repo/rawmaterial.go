package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"espetaria/internal/domain"
	"espetaria/internal/domain/catalogs/rawmaterial"
	"espetaria/internal/infrastructure/storage/postgres"
)

const rawMaterialTable = "cat_raw_materials"

// RawMaterialRepo implements rawmaterial.Repository.
type RawMaterialRepo struct {
	*BaseCatalogRepo[*rawmaterial.RawMaterial]
}

// NewRawMaterialRepo creates a new raw material repository.
func NewRawMaterialRepo(txManager *postgres.TxManager) *RawMaterialRepo {
	return &RawMaterialRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			rawMaterialTable,
			postgres.ExtractDBColumns[rawmaterial.RawMaterial](),
			func() *rawmaterial.RawMaterial { return &rawmaterial.RawMaterial{} },
		),
	}
}

// FindLowStock retrieves materials with stock at or below their minimum.
func (r *RawMaterialRepo) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*rawmaterial.RawMaterial], error) {
	result := domain.ListResult[*rawmaterial.RawMaterial]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Expr("current_stock <= minimum_stock")).
		OrderBy("name ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var items []*rawmaterial.RawMaterial
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find low stock: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
