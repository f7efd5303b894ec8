package entity

import (
	"time"

	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

// MovementType defines the direction of a product or raw material movement.
type MovementType string

const (
	// MovementEntry increases stock (finished product entering stock)
	MovementEntry MovementType = "ENTRY"
	// MovementExit decreases stock (raw material consumed)
	MovementExit MovementType = "EXIT"
)

// SupplyMovementType defines the direction of a supply movement.
type SupplyMovementType string

const (
	SupplyMovementIn  SupplyMovementType = "IN"
	SupplyMovementOut SupplyMovementType = "OUT"
)

// SupplyReasonProduction marks supply movements driven by a production record.
const SupplyReasonProduction = "PRODUCTION"

// MovementBase contains common fields for all ledger movements.
// Movements are append-only - they are never updated or deleted.
//
// Quantity is the signed delta applied to the stock level, so the invariant
// NewStock == PreviousStock + Quantity holds for every flavor of movement.
type MovementBase struct {
	// LineID is the unique identifier of this ledger line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// ProductionID references the production record that caused this movement
	ProductionID id.ID `db:"production_id" json:"productionId"`

	// Quantity is the signed stock delta
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// PreviousStock is the stock level before this movement was applied
	PreviousStock types.Quantity `db:"previous_stock" json:"previousStock"`

	// NewStock is the stock level after this movement was applied
	NewStock types.Quantity `db:"new_stock" json:"newStock"`

	// Reason is a human-readable explanation, e.g. "Production of 300 Espeto de Carne"
	Reason string `db:"reason" json:"reason"`

	// PerformedBy is the acting user recorded for the audit trail
	PerformedBy string `db:"performed_by" json:"performedBy"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovementBase creates a movement base with generated LineID.
func NewMovementBase(productionID id.ID, quantity, previousStock types.Quantity, reason, performedBy string) MovementBase {
	return MovementBase{
		LineID:        id.New(),
		ProductionID:  productionID,
		Quantity:      quantity,
		PreviousStock: previousStock,
		NewStock:      previousStock.Add(quantity),
		Reason:        reason,
		PerformedBy:   performedBy,
		CreatedAt:     time.Now().UTC(),
	}
}

// Consistent reports whether NewStock == PreviousStock + Quantity.
// Checked as a write-time post-condition.
func (m *MovementBase) Consistent() bool {
	return m.NewStock.Equal(m.PreviousStock.Add(m.Quantity))
}

// StockMovement records a finished product stock change.
type StockMovement struct {
	MovementBase

	Type      MovementType `db:"type" json:"type"`
	ProductID id.ID        `db:"product_id" json:"productId"`
}

// NewStockMovement creates a finished product movement. The movement type is
// derived from the sign of the quantity.
func NewStockMovement(productionID, productID id.ID, quantity, previousStock types.Quantity, reason, performedBy string) StockMovement {
	mt := MovementEntry
	if quantity.IsNegative() {
		mt = MovementExit
	}
	return StockMovement{
		MovementBase: NewMovementBase(productionID, quantity, previousStock, reason, performedBy),
		Type:         mt,
		ProductID:    productID,
	}
}

// RawMaterialMovement records a raw material stock change in kilograms.
type RawMaterialMovement struct {
	MovementBase

	Type          MovementType `db:"type" json:"type"`
	RawMaterialID id.ID        `db:"raw_material_id" json:"rawMaterialId"`
}

// NewRawMaterialMovement creates a raw material movement. The movement type is
// derived from the sign of the quantity.
func NewRawMaterialMovement(productionID, rawMaterialID id.ID, quantity, previousStock types.Quantity, reason, performedBy string) RawMaterialMovement {
	mt := MovementEntry
	if quantity.IsNegative() {
		mt = MovementExit
	}
	return RawMaterialMovement{
		MovementBase:  NewMovementBase(productionID, quantity, previousStock, reason, performedBy),
		Type:          mt,
		RawMaterialID: rawMaterialID,
	}
}

// SupplyMovement records a supply stock change in the supply's own unit.
// Notes name the parent supply when the consumption was driven by a compound
// supply sub-recipe, so an auditor can answer "why did ingredient Y decrease?".
type SupplyMovement struct {
	MovementBase

	Type     SupplyMovementType `db:"type" json:"type"`
	SupplyID id.ID              `db:"supply_id" json:"supplyId"`
	Notes    string             `db:"notes" json:"notes,omitempty"`
}

// NewSupplyMovement creates a supply movement. The movement type is derived
// from the sign of the quantity.
func NewSupplyMovement(productionID, supplyID id.ID, quantity, previousStock types.Quantity, reason, notes, performedBy string) SupplyMovement {
	mt := SupplyMovementIn
	if quantity.IsNegative() {
		mt = SupplyMovementOut
	}
	return SupplyMovement{
		MovementBase: NewMovementBase(productionID, quantity, previousStock, reason, performedBy),
		Type:         mt,
		SupplyID:     supplyID,
		Notes:        notes,
	}
}

// Magnitude returns the unsigned quantity of the movement; direction is
// carried by the movement type.
func (m *SupplyMovement) Magnitude() types.Quantity {
	return m.Quantity.Abs()
}
