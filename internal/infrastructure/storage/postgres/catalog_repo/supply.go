package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/infrastructure/storage/postgres"
)

const (
	supplyTable           = "cat_supplies"
	supplyRecipeTable     = "supply_recipes"
	supplyRecipeItemTable = "supply_recipe_items"
)

// SupplyRepo implements supply.Repository, including the sub-recipe
// storage that makes a supply compound.
type SupplyRepo struct {
	*BaseCatalogRepo[*supply.Supply]
}

// NewSupplyRepo creates a new supply repository.
func NewSupplyRepo(txManager *postgres.TxManager) *SupplyRepo {
	return &SupplyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			supplyTable,
			postgres.ExtractDBColumns[supply.Supply](),
			func() *supply.Supply { return &supply.Supply{} },
		),
	}
}

// recipeItemRow is the scan target for sub-recipe lines joined with their
// ingredient snapshots.
type recipeItemRow struct {
	LineID       id.ID          `db:"line_id"`
	LineNo       int            `db:"line_no"`
	IngredientID id.ID          `db:"ingredient_id"`
	Quantity     types.Quantity `db:"quantity"`
	Unit         string         `db:"unit"`

	IngName  string         `db:"ing_name"`
	IngUnit  string         `db:"ing_unit"`
	IngStock types.Quantity `db:"ing_stock"`
}

// GetRecipe retrieves the sub-recipe of a supply with ingredient
// snapshots, or (nil, nil) for simple supplies.
func (r *SupplyRepo) GetRecipe(ctx context.Context, supplyID id.ID) (*supply.SupplyRecipe, error) {
	q := r.Builder().
		Select("id", "supply_id", "yield_amount", "created_at").
		From(supplyRecipeTable).
		Where(squirrel.Eq{"supply_id": supplyID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	recipe := &supply.SupplyRecipe{}
	if err := pgxscan.Get(ctx, r.Querier(ctx), recipe, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply recipe: %w", err)
	}

	itemsQ := r.Builder().
		Select(
			"i.line_id", "i.line_no", "i.ingredient_id", "i.quantity", "i.unit",
			"s.name AS ing_name", "s.unit AS ing_unit", "s.current_stock AS ing_stock",
		).
		From(supplyRecipeItemTable + " i").
		Join(supplyTable + " s ON s.id = i.ingredient_id").
		Where(squirrel.Eq{"i.recipe_id": recipe.ID}).
		OrderBy("i.line_no ASC")

	itemsSQL, itemsArgs, err := itemsQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var rows []recipeItemRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, itemsSQL, itemsArgs...); err != nil {
		return nil, fmt.Errorf("get supply recipe items: %w", err)
	}

	recipe.Items = make([]supply.SupplyRecipeItem, 0, len(rows))
	for _, row := range rows {
		recipe.Items = append(recipe.Items, supply.SupplyRecipeItem{
			LineID:       row.LineID,
			LineNo:       row.LineNo,
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			Ingredient: supply.Ref{
				ID:           row.IngredientID,
				Name:         row.IngName,
				Unit:         row.IngUnit,
				CurrentStock: row.IngStock,
			},
		})
	}

	return recipe, nil
}

// SaveRecipe creates or replaces the sub-recipe of a supply.
func (r *SupplyRepo) SaveRecipe(ctx context.Context, recipe *supply.SupplyRecipe) error {
	if err := r.DeleteRecipe(ctx, recipe.SupplyID); err != nil {
		return err
	}

	insertQ := r.Builder().
		Insert(supplyRecipeTable).
		Columns("id", "supply_id", "yield_amount", "created_at").
		Values(recipe.ID, recipe.SupplyID, recipe.YieldAmount, recipe.CreatedAt)

	sql, args, err := insertQ.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert supply recipe: %w", err)
	}

	if len(recipe.Items) == 0 {
		return nil
	}

	itemsQ := r.Builder().
		Insert(supplyRecipeItemTable).
		Columns("line_id", "recipe_id", "line_no", "ingredient_id", "quantity", "unit")
	for _, item := range recipe.Items {
		itemsQ = itemsQ.Values(item.LineID, recipe.ID, item.LineNo, item.IngredientID, item.Quantity, item.Unit)
	}

	itemsSQL, itemsArgs, err := itemsQ.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, itemsSQL, itemsArgs...); err != nil {
		return fmt.Errorf("insert supply recipe items: %w", err)
	}

	return nil
}

// DeleteRecipe removes the sub-recipe of a supply. Items go with it via
// ON DELETE CASCADE.
func (r *SupplyRepo) DeleteRecipe(ctx context.Context, supplyID id.ID) error {
	q := r.Builder().
		Delete(supplyRecipeTable).
		Where(squirrel.Eq{"supply_id": supplyID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete supply recipe: %w", err)
	}

	return nil
}

// FindLowStock retrieves supplies with stock at or below their minimum.
func (r *SupplyRepo) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*supply.Supply], error) {
	result := domain.ListResult[*supply.Supply]{
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

	var items []*supply.Supply
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find low stock: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
