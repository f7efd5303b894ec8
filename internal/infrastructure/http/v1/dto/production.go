package dto

import (
	"time"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/production"
)

// RecordProductionRequest is the HTTP input for recording a production.
type RecordProductionRequest struct {
	EmployeeID       string         `json:"employeeId" binding:"required"`
	ProductID        string         `json:"productId" binding:"required"`
	QuantityProduced types.Quantity `json:"quantityProduced" binding:"required"`

	Date  *time.Time `json:"date"`
	Shift string     `json:"shift"`

	QualityScore *types.Quantity `json:"qualityScore"`
	RejectedQty  *types.Quantity `json:"rejectedQty"`
	Notes        string          `json:"notes"`

	CreatedBy string `json:"createdBy" binding:"required"`
}

// ToRequest converts the HTTP payload into an engine request.
func (r *RecordProductionRequest) ToRequest() (*production.RecordRequest, error) {
	employeeID, err := id.Parse(r.EmployeeID)
	if err != nil {
		return nil, apperror.NewValidation("invalid employee id").
			WithDetail("field", "employeeId")
	}
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId")
	}

	req := &production.RecordRequest{
		EmployeeID:       employeeID,
		ProductID:        productID,
		QuantityProduced: r.QuantityProduced,
		Date:             r.Date,
		Shift:            production.Shift(r.Shift),
		QualityScore:     r.QualityScore,
		Notes:            r.Notes,
		CreatedBy:        r.CreatedBy,
	}
	if r.RejectedQty != nil {
		req.RejectedQty = *r.RejectedQty
	} else {
		req.RejectedQty = types.ZeroQuantity()
	}
	return req, nil
}

// ProductionListQuery narrows the production record listing.
type ProductionListQuery struct {
	EmployeeID string `form:"employeeId"`
	ProductID  string `form:"productId"`
	Shift      string `form:"shift"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`

	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ToFilter converts query parameters into an engine list filter.
func (q *ProductionListQuery) ToFilter() (production.ListFilter, error) {
	filter := production.DefaultListFilter()

	if q.EmployeeID != "" {
		employeeID, err := id.Parse(q.EmployeeID)
		if err != nil {
			return filter, apperror.NewValidation("invalid employee id").
				WithDetail("field", "employeeId")
		}
		filter.EmployeeID = &employeeID
	}
	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err != nil {
			return filter, apperror.NewValidation("invalid product id").
				WithDetail("field", "productId")
		}
		filter.ProductID = &productID
	}
	if q.Shift != "" {
		shift := production.Shift(q.Shift)
		if !shift.Valid() {
			return filter, apperror.NewValidation("unknown shift").
				WithDetail("field", "shift").
				WithDetail("value", q.Shift)
		}
		filter.Shift = &shift
	}
	if q.DateFrom != "" {
		from, err := time.Parse(time.RFC3339, q.DateFrom)
		if err != nil {
			return filter, apperror.NewValidation("invalid dateFrom, expected RFC3339").
				WithDetail("field", "dateFrom")
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := time.Parse(time.RFC3339, q.DateTo)
		if err != nil {
			return filter, apperror.NewValidation("invalid dateTo, expected RFC3339").
				WithDetail("field", "dateTo")
		}
		filter.DateTo = &to
	}
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	if q.Offset > 0 {
		filter.Offset = q.Offset
	}
	return filter, nil
}

// ProductionListResponse wraps a production record page.
type ProductionListResponse struct {
	Items      []*production.ProductionRecord `json:"items"`
	TotalCount int64                          `json:"totalCount"`
	Limit      int                            `json:"limit"`
	Offset     int                            `json:"offset"`
}
