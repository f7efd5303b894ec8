// Package production implements the production-recording engine: it
// resolves the product's bill of materials, computes proportional
// consumption across raw materials and supplies (including compound
// supplies with their own sub-recipes), evaluates advisory stock
// warnings, and atomically writes the production record together with
// every stock mutation and ledger movement.
package production

import (
	"context"
	"time"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

// Shift identifies the work shift a production happened in.
type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
	ShiftNight     Shift = "NIGHT"
	ShiftFullDay   Shift = "FULL_DAY"
)

// Valid reports whether the shift is one of the known values.
func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftFullDay:
		return true
	}
	return false
}

// ProductionRecord is the immutable fact of one production event. It is
// created together with its movements in a single transaction and never
// mutated by the engine.
type ProductionRecord struct {
	entity.BaseDocument

	Number string `db:"number" json:"number"`

	EmployeeID id.ID `db:"employee_id" json:"employeeId"`
	ProductID  id.ID `db:"product_id" json:"productId"`

	QuantityProduced types.Quantity `db:"quantity_produced" json:"quantityProduced"`

	Date  time.Time `db:"date" json:"date"`
	Shift Shift     `db:"shift" json:"shift"`

	QualityScore *types.Quantity `db:"quality_score" json:"qualityScore,omitempty"`
	RejectedQty  types.Quantity  `db:"rejected_qty" json:"rejectedQty"`
	Notes        string          `db:"notes" json:"notes,omitempty"`
}

// RecordRequest is the input of the engine's primary entry point.
// CreatedBy is threaded explicitly through the request; the engine never
// reads the acting user from ambient state.
type RecordRequest struct {
	EmployeeID       id.ID
	ProductID        id.ID
	QuantityProduced types.Quantity

	Date  *time.Time
	Shift Shift

	QualityScore *types.Quantity
	RejectedQty  types.Quantity
	Notes        string

	CreatedBy string
}

// Validate checks the request before any read happens.
func (r *RecordRequest) Validate(ctx context.Context) error {
	if id.IsNil(r.EmployeeID) {
		return apperror.NewValidation("employee is required").
			WithDetail("field", "employeeId")
	}
	if id.IsNil(r.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if !r.QuantityProduced.IsPositive() {
		return apperror.NewInvalidQuantity(r.QuantityProduced.String())
	}
	if r.Shift != "" && !r.Shift.Valid() {
		return apperror.NewValidation("unknown shift").
			WithDetail("field", "shift").
			WithDetail("value", string(r.Shift))
	}
	if r.QualityScore != nil {
		min, max := types.ZeroQuantity(), types.NewQuantity(10)
		if r.QualityScore.LessThan(min) || r.QualityScore.GreaterThan(max) {
			return apperror.NewValidation("quality score must be between 0 and 10").
				WithDetail("field", "qualityScore")
		}
	}
	if r.RejectedQty.IsNegative() {
		return apperror.NewValidation("rejected quantity cannot be negative").
			WithDetail("field", "rejectedQty")
	}
	if r.CreatedBy == "" {
		return apperror.NewValidation("acting user is required").
			WithDetail("field", "createdBy")
	}
	return nil
}

// newRecord builds the production record from a validated request,
// applying the defaults for date and shift.
func newRecord(req *RecordRequest, number string) *ProductionRecord {
	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	shift := req.Shift
	if shift == "" {
		shift = ShiftFullDay
	}

	rec := &ProductionRecord{
		BaseDocument:     entity.NewBaseDocument(),
		Number:           number,
		EmployeeID:       req.EmployeeID,
		ProductID:        req.ProductID,
		QuantityProduced: req.QuantityProduced,
		Date:             date,
		Shift:            shift,
		QualityScore:     req.QualityScore,
		RejectedQty:      req.RejectedQty,
		Notes:            req.Notes,
	}
	rec.CreatedBy = req.CreatedBy
	rec.UpdatedBy = req.CreatedBy
	return rec
}

// ListFilter narrows the production record listing.
type ListFilter struct {
	EmployeeID *id.ID
	ProductID  *id.ID
	Shift      *Shift
	DateFrom   *time.Time
	DateTo     *time.Time

	Limit  int
	Offset int
}

// DefaultListFilter returns a filter with sane paging defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}
