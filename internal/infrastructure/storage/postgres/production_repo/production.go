// Package production_repo provides the PostgreSQL implementation of the
// production engine's storage: record headers, relative stock
// adjustments and the append-only movement ledger.
package production_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/production"
	"espetaria/internal/infrastructure/storage/postgres"
)

const (
	recordTable              = "production_records"
	productMovementTable     = "product_movements"
	rawMaterialMovementTable = "raw_material_movements"
	supplyMovementTable      = "supply_movements"
)

// ProductionRepo implements production.Repository.
type ProductionRepo struct {
	txManager *postgres.TxManager
	inserter  *postgres.BatchInserter
}

// NewProductionRepo creates a new production repository.
func NewProductionRepo(txManager *postgres.TxManager) *ProductionRepo {
	return &ProductionRepo{
		txManager: txManager,
		inserter:  postgres.NewBatchInserter(txManager),
	}
}

var _ production.Repository = (*ProductionRepo)(nil)

func (r *ProductionRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ProductionRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// CreateRecord inserts the production record header.
func (r *ProductionRepo) CreateRecord(ctx context.Context, rec *production.ProductionRecord) error {
	data := postgres.StructToMap(rec)

	q := r.builder().
		Insert(recordTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert production record: %w", err)
	}
	return nil
}

// GetByID loads a production record.
func (r *ProductionRepo) GetByID(ctx context.Context, recordID id.ID) (*production.ProductionRecord, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[production.ProductionRecord]()...).
		From(recordTable).
		Where(squirrel.Eq{"id": recordID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rec := &production.ProductionRecord{}
	if err := pgxscan.Get(ctx, r.querier(ctx), rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production record: %w", err)
	}
	return rec, nil
}

// List returns production records matching the filter, newest first.
func (r *ProductionRepo) List(ctx context.Context, filter production.ListFilter) ([]*production.ProductionRecord, int64, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[production.ProductionRecord]()...).
		From(recordTable)

	if filter.EmployeeID != nil {
		q = q.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Shift != nil {
		q = q.Where(squirrel.Eq{"shift": string(*filter.Shift)})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	q = q.OrderBy("date DESC", "created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var records []*production.ProductionRecord
	if err := pgxscan.Select(ctx, r.querier(ctx), &records, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}

	return records, total, nil
}

// adjustStock applies a relative delta and returns the level before and
// after. The single UPDATE keeps concurrent productions from losing each
// other's writes: conflicting rows serialize on the row lock.
func (r *ProductionRepo) adjustStock(ctx context.Context, table string, entityID id.ID, delta types.Quantity) (production.StockChange, error) {
	sql := fmt.Sprintf(
		"UPDATE %s SET current_stock = current_stock + $1 WHERE id = $2 RETURNING current_stock",
		table,
	)

	var newStock types.Quantity
	err := r.querier(ctx).QueryRow(ctx, sql, delta, entityID).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return production.StockChange{}, apperror.NewNotFound(table, entityID)
	}
	if err != nil {
		return production.StockChange{}, fmt.Errorf("adjust stock in %s: %w", table, err)
	}

	return production.StockChange{
		Previous: newStock.Sub(delta),
		New:      newStock,
	}, nil
}

// AdjustProductStock applies a signed delta to the product's stock.
func (r *ProductionRepo) AdjustProductStock(ctx context.Context, productID id.ID, delta types.Quantity) (production.StockChange, error) {
	return r.adjustStock(ctx, "cat_products", productID, delta)
}

// AdjustRawMaterialStock applies a signed delta to the raw material's stock.
func (r *ProductionRepo) AdjustRawMaterialStock(ctx context.Context, rawMaterialID id.ID, delta types.Quantity) (production.StockChange, error) {
	return r.adjustStock(ctx, "cat_raw_materials", rawMaterialID, delta)
}

// AdjustSupplyStock applies a signed delta to the supply's stock.
func (r *ProductionRepo) AdjustSupplyStock(ctx context.Context, supplyID id.ID, delta types.Quantity) (production.StockChange, error) {
	return r.adjustStock(ctx, "cat_supplies", supplyID, delta)
}

// AppendStockMovements appends finished product ledger movements via COPY.
func (r *ProductionRepo) AppendStockMovements(ctx context.Context, movements []entity.StockMovement) error {
	columns := []string{
		"line_id", "production_id", "product_id", "type",
		"quantity", "previous_stock", "new_stock",
		"reason", "performed_by", "created_at",
	}
	rows := make([][]any, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []any{
			m.LineID, m.ProductionID, m.ProductID, string(m.Type),
			m.Quantity, m.PreviousStock, m.NewStock,
			m.Reason, m.PerformedBy, m.CreatedAt,
		})
	}

	if _, err := r.inserter.CopyFromSlice(ctx, productMovementTable, columns, rows); err != nil {
		return fmt.Errorf("append product movements: %w", err)
	}
	return nil
}

// AppendRawMaterialMovements appends raw material ledger movements via COPY.
func (r *ProductionRepo) AppendRawMaterialMovements(ctx context.Context, movements []entity.RawMaterialMovement) error {
	columns := []string{
		"line_id", "production_id", "raw_material_id", "type",
		"quantity", "previous_stock", "new_stock",
		"reason", "performed_by", "created_at",
	}
	rows := make([][]any, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []any{
			m.LineID, m.ProductionID, m.RawMaterialID, string(m.Type),
			m.Quantity, m.PreviousStock, m.NewStock,
			m.Reason, m.PerformedBy, m.CreatedAt,
		})
	}

	if _, err := r.inserter.CopyFromSlice(ctx, rawMaterialMovementTable, columns, rows); err != nil {
		return fmt.Errorf("append raw material movements: %w", err)
	}
	return nil
}

// AppendSupplyMovements appends supply ledger movements via COPY.
func (r *ProductionRepo) AppendSupplyMovements(ctx context.Context, movements []entity.SupplyMovement) error {
	columns := []string{
		"line_id", "production_id", "supply_id", "type",
		"quantity", "previous_stock", "new_stock",
		"reason", "notes", "performed_by", "created_at",
	}
	rows := make([][]any, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []any{
			m.LineID, m.ProductionID, m.SupplyID, string(m.Type),
			m.Quantity, m.PreviousStock, m.NewStock,
			m.Reason, m.Notes, m.PerformedBy, m.CreatedAt,
		})
	}

	if _, err := r.inserter.CopyFromSlice(ctx, supplyMovementTable, columns, rows); err != nil {
		return fmt.Errorf("append supply movements: %w", err)
	}
	return nil
}

// listMovements pages one movement table filtered by its owning entity,
// newest rows first.
func listMovements[T any](ctx context.Context, r *ProductionRepo, table, idCol string, entityID id.ID, limit, offset int) ([]T, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[T]()...).
		From(table).
		Where(squirrel.Eq{idCol: entityID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []T
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements from %s: %w", table, err)
	}
	return rows, nil
}

// MovementsForProduct lists a product's ledger movements, newest first.
func (r *ProductionRepo) MovementsForProduct(ctx context.Context, productID id.ID, limit, offset int) ([]entity.StockMovement, error) {
	return listMovements[entity.StockMovement](ctx, r, productMovementTable, "product_id", productID, limit, offset)
}

// MovementsForRawMaterial lists a raw material's ledger movements, newest first.
func (r *ProductionRepo) MovementsForRawMaterial(ctx context.Context, rawMaterialID id.ID, limit, offset int) ([]entity.RawMaterialMovement, error) {
	return listMovements[entity.RawMaterialMovement](ctx, r, rawMaterialMovementTable, "raw_material_id", rawMaterialID, limit, offset)
}

// MovementsForSupply lists a supply's ledger movements, newest first.
func (r *ProductionRepo) MovementsForSupply(ctx context.Context, supplyID id.ID, limit, offset int) ([]entity.SupplyMovement, error) {
	return listMovements[entity.SupplyMovement](ctx, r, supplyMovementTable, "supply_id", supplyID, limit, offset)
}

// MovementsByRecord loads every ledger movement referencing the record.
func (r *ProductionRepo) MovementsByRecord(ctx context.Context, recordID id.ID) (*production.MovementHistory, error) {
	history := &production.MovementHistory{}

	q := r.builder().
		Select(postgres.ExtractDBColumns[entity.StockMovement]()...).
		From(productMovementTable).
		Where(squirrel.Eq{"production_id": recordID}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &history.Product, sql, args...); err != nil {
		return nil, fmt.Errorf("load product movements: %w", err)
	}

	q = r.builder().
		Select(postgres.ExtractDBColumns[entity.RawMaterialMovement]()...).
		From(rawMaterialMovementTable).
		Where(squirrel.Eq{"production_id": recordID}).
		OrderBy("created_at ASC")

	sql, args, err = q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &history.RawMaterials, sql, args...); err != nil {
		return nil, fmt.Errorf("load raw material movements: %w", err)
	}

	q = r.builder().
		Select(postgres.ExtractDBColumns[entity.SupplyMovement]()...).
		From(supplyMovementTable).
		Where(squirrel.Eq{"production_id": recordID}).
		OrderBy("created_at ASC")

	sql, args, err = q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &history.Supplies, sql, args...); err != nil {
		return nil, fmt.Errorf("load supply movements: %w", err)
	}

	return history, nil
}
