// Package recipe_repo provides the PostgreSQL implementation of the
// product recipe repository.
package recipe_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/domain/recipe"
	"espetaria/internal/infrastructure/storage/postgres"
)

const (
	recipeTable         = "recipes"
	ingredientLineTable = "recipe_ingredient_lines"
	supplyLineTable     = "recipe_supply_lines"
)

// RecipeRepo implements recipe.Repository.
type RecipeRepo struct {
	txManager *postgres.TxManager
}

// NewRecipeRepo creates a new recipe repository.
func NewRecipeRepo(txManager *postgres.TxManager) *RecipeRepo {
	return &RecipeRepo{txManager: txManager}
}

var _ recipe.Repository = (*RecipeRepo)(nil)

func (r *RecipeRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *RecipeRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

const recipeHeaderCols = "id, product_id, created_at, updated_at, created_by, updated_by, deletion_mark, version"

// Create stores the recipe header and all lines.
func (r *RecipeRepo) Create(ctx context.Context, rcp *recipe.Recipe) error {
	q := r.builder().
		Insert(recipeTable).
		Columns("id", "product_id", "created_at", "updated_at", "created_by", "updated_by", "deletion_mark", "version").
		Values(rcp.ID, rcp.ProductID, rcp.CreatedAt, rcp.UpdatedAt, rcp.CreatedBy, rcp.UpdatedBy, rcp.DeletionMark, rcp.Version)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}

	return r.insertLines(ctx, rcp)
}

// ingredientLineRow joins a line with its raw material snapshot.
type ingredientLineRow struct {
	LineID        id.ID          `db:"line_id"`
	LineNo        int            `db:"line_no"`
	RawMaterialID id.ID          `db:"raw_material_id"`
	GramsPerUnit  types.Quantity `db:"grams_per_unit"`

	RawMaterialName  string         `db:"raw_material_name"`
	RawMaterialStock types.Quantity `db:"raw_material_stock"`
}

// supplyLineRow joins a line with its supply snapshot. The snapshot
// columns are pointers because legacy rows may not resolve to a supply.
type supplyLineRow struct {
	LineID   id.ID           `db:"line_id"`
	LineNo   int             `db:"line_no"`
	SupplyID *id.ID          `db:"supply_id"`
	PerUnit  types.Quantity  `db:"per_unit"`
	Name     *string         `db:"supply_name"`
	Unit     *string         `db:"supply_unit"`
	Stock    *types.Quantity `db:"supply_stock"`
}

// GetByID loads the recipe with lines and snapshots.
func (r *RecipeRepo) GetByID(ctx context.Context, recipeID id.ID) (*recipe.Recipe, error) {
	q := r.builder().
		Select(recipeHeaderCols).
		From(recipeTable).
		Where(squirrel.Eq{"id": recipeID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rcp := &recipe.Recipe{}
	if err := pgxscan.Get(ctx, r.querier(ctx), rcp, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("recipe", recipeID)
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if err := r.loadLines(ctx, rcp); err != nil {
		return nil, err
	}
	return rcp, nil
}

// GetActiveByProduct returns the product's active recipe or nil. The
// oldest recipe wins when several exist.
func (r *RecipeRepo) GetActiveByProduct(ctx context.Context, productID id.ID) (*recipe.Recipe, error) {
	q := r.builder().
		Select(recipeHeaderCols).
		From(recipeTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at ASC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rcp := &recipe.Recipe{}
	if err := pgxscan.Get(ctx, r.querier(ctx), rcp, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active recipe: %w", err)
	}

	if err := r.loadLines(ctx, rcp); err != nil {
		return nil, err
	}
	return rcp, nil
}

// ListByProduct returns all recipe headers for a product, oldest first.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*recipe.Recipe, error) {
	q := r.builder().
		Select(recipeHeaderCols).
		From(recipeTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var recipes []*recipe.Recipe
	if err := pgxscan.Select(ctx, r.querier(ctx), &recipes, sql, args...); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// SaveLines replaces the recipe's ingredient and supply lines.
func (r *RecipeRepo) SaveLines(ctx context.Context, rcp *recipe.Recipe) error {
	if err := r.deleteLines(ctx, rcp.ID); err != nil {
		return err
	}
	if err := r.insertLines(ctx, rcp); err != nil {
		return err
	}

	touch := r.builder().
		Update(recipeTable).
		Set("updated_at", squirrel.Expr("now()")).
		Set("updated_by", rcp.UpdatedBy).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": rcp.ID})

	sql, args, err := touch.ToSql()
	if err != nil {
		return fmt.Errorf("build touch: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("touch recipe: %w", err)
	}
	return nil
}

// Delete removes the recipe; lines cascade.
func (r *RecipeRepo) Delete(ctx context.Context, recipeID id.ID) error {
	q := r.builder().
		Delete(recipeTable).
		Where(squirrel.Eq{"id": recipeID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("recipe", recipeID)
	}
	return nil
}

func (r *RecipeRepo) loadLines(ctx context.Context, rcp *recipe.Recipe) error {
	linesQ := r.builder().
		Select(
			"l.line_id", "l.line_no", "l.raw_material_id", "l.grams_per_unit",
			"m.name AS raw_material_name", "m.current_stock AS raw_material_stock",
		).
		From(ingredientLineTable + " l").
		Join("cat_raw_materials m ON m.id = l.raw_material_id").
		Where(squirrel.Eq{"l.recipe_id": rcp.ID}).
		OrderBy("l.line_no ASC")

	sql, args, err := linesQ.ToSql()
	if err != nil {
		return fmt.Errorf("build lines query: %w", err)
	}

	var lineRows []ingredientLineRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &lineRows, sql, args...); err != nil {
		return fmt.Errorf("load ingredient lines: %w", err)
	}

	rcp.Lines = make([]recipe.IngredientLine, 0, len(lineRows))
	for _, row := range lineRows {
		rcp.Lines = append(rcp.Lines, recipe.IngredientLine{
			LineID:           row.LineID,
			LineNo:           row.LineNo,
			RawMaterialID:    row.RawMaterialID,
			GramsPerUnit:     row.GramsPerUnit,
			RawMaterialName:  row.RawMaterialName,
			RawMaterialStock: row.RawMaterialStock,
		})
	}

	supplyQ := r.builder().
		Select(
			"l.line_id", "l.line_no", "l.supply_id", "l.per_unit",
			"s.name AS supply_name", "s.unit AS supply_unit", "s.current_stock AS supply_stock",
		).
		From(supplyLineTable + " l").
		LeftJoin("cat_supplies s ON s.id = l.supply_id").
		Where(squirrel.Eq{"l.recipe_id": rcp.ID}).
		OrderBy("l.line_no ASC")

	supplySQL, supplyArgs, err := supplyQ.ToSql()
	if err != nil {
		return fmt.Errorf("build supply lines query: %w", err)
	}

	var supplyRows []supplyLineRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &supplyRows, supplySQL, supplyArgs...); err != nil {
		return fmt.Errorf("load supply lines: %w", err)
	}

	rcp.SupplyLines = make([]recipe.SupplyLine, 0, len(supplyRows))
	for _, row := range supplyRows {
		line := recipe.SupplyLine{
			LineID:   row.LineID,
			LineNo:   row.LineNo,
			SupplyID: row.SupplyID,
			PerUnit:  row.PerUnit,
		}
		// Unlinked legacy rows stay in the recipe with a nil snapshot;
		// the engine skips them.
		if row.SupplyID != nil && row.Name != nil {
			line.Resolved = &supply.Ref{
				ID:           *row.SupplyID,
				Name:         *row.Name,
				Unit:         *row.Unit,
				CurrentStock: *row.Stock,
			}
		}
		rcp.SupplyLines = append(rcp.SupplyLines, line)
	}

	return nil
}

func (r *RecipeRepo) insertLines(ctx context.Context, rcp *recipe.Recipe) error {
	if len(rcp.Lines) > 0 {
		q := r.builder().
			Insert(ingredientLineTable).
			Columns("line_id", "recipe_id", "line_no", "raw_material_id", "grams_per_unit")
		for _, line := range rcp.Lines {
			q = q.Values(line.LineID, rcp.ID, line.LineNo, line.RawMaterialID, line.GramsPerUnit)
		}

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build lines insert: %w", err)
		}
		if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert ingredient lines: %w", err)
		}
	}

	if len(rcp.SupplyLines) > 0 {
		q := r.builder().
			Insert(supplyLineTable).
			Columns("line_id", "recipe_id", "line_no", "supply_id", "per_unit")
		for _, line := range rcp.SupplyLines {
			q = q.Values(line.LineID, rcp.ID, line.LineNo, line.SupplyID, line.PerUnit)
		}

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build supply lines insert: %w", err)
		}
		if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert supply lines: %w", err)
		}
	}

	return nil
}

func (r *RecipeRepo) deleteLines(ctx context.Context, recipeID id.ID) error {
	for _, table := range []string{ingredientLineTable, supplyLineTable} {
		q := r.builder().
			Delete(table).
			Where(squirrel.Eq{"recipe_id": recipeID})

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("delete lines from %s: %w", table, err)
		}
	}
	return nil
}
