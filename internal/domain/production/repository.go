package production

import (
	"context"

	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

// StockChange reports a stock level before and after an adjustment. The
// adjustment is applied as a relative delta inside the transaction, so two
// concurrent productions against the same row never lose an update.
type StockChange struct {
	Previous types.Quantity
	New      types.Quantity
}

// Repository persists production records, stock adjustments and ledger
// movements. All write methods are expected to run inside the transaction
// carried by the context; none of them commits on its own.
type Repository interface {
	// CreateRecord inserts the production record header.
	CreateRecord(ctx context.Context, rec *ProductionRecord) error

	// GetByID loads a production record.
	GetByID(ctx context.Context, recordID id.ID) (*ProductionRecord, error)

	// List returns production records matching the filter, newest first,
	// with the total count ignoring paging.
	List(ctx context.Context, filter ListFilter) ([]*ProductionRecord, int64, error)

	// AdjustProductStock applies a signed delta to the product's stock and
	// returns the level before and after.
	AdjustProductStock(ctx context.Context, productID id.ID, delta types.Quantity) (StockChange, error)

	// AdjustRawMaterialStock applies a signed delta to the raw material's
	// stock in kilograms and returns the level before and after.
	AdjustRawMaterialStock(ctx context.Context, rawMaterialID id.ID, delta types.Quantity) (StockChange, error)

	// AdjustSupplyStock applies a signed delta to the supply's stock in its
	// own unit and returns the level before and after.
	AdjustSupplyStock(ctx context.Context, supplyID id.ID, delta types.Quantity) (StockChange, error)

	// AppendStockMovements appends finished product ledger movements.
	AppendStockMovements(ctx context.Context, movements []entity.StockMovement) error

	// AppendRawMaterialMovements appends raw material ledger movements.
	AppendRawMaterialMovements(ctx context.Context, movements []entity.RawMaterialMovement) error

	// AppendSupplyMovements appends supply ledger movements.
	AppendSupplyMovements(ctx context.Context, movements []entity.SupplyMovement) error

	// MovementsByRecord loads every ledger movement referencing the record,
	// for the movement history endpoint.
	MovementsByRecord(ctx context.Context, recordID id.ID) (*MovementHistory, error)

	// MovementsForProduct lists a product's ledger movements, newest first.
	MovementsForProduct(ctx context.Context, productID id.ID, limit, offset int) ([]entity.StockMovement, error)

	// MovementsForRawMaterial lists a raw material's ledger movements,
	// newest first.
	MovementsForRawMaterial(ctx context.Context, rawMaterialID id.ID, limit, offset int) ([]entity.RawMaterialMovement, error)

	// MovementsForSupply lists a supply's ledger movements, newest first.
	MovementsForSupply(ctx context.Context, supplyID id.ID, limit, offset int) ([]entity.SupplyMovement, error)
}

// MovementHistory groups every ledger line written for one production.
type MovementHistory struct {
	Product      []entity.StockMovement       `json:"product"`
	RawMaterials []entity.RawMaterialMovement `json:"rawMaterials"`
	Supplies     []entity.SupplyMovement      `json:"supplies"`
}
