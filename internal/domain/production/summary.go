package production

import (
	"espetaria/internal/core/types"
)

// ConsumedItem is one "name + quantity" line in the summary.
type ConsumedItem struct {
	Name     string         `json:"name"`
	Quantity types.Quantity `json:"quantity"`
	Unit     string         `json:"unit,omitempty"`

	// Parent names the compound supply that drove the consumption. Empty
	// for raw materials and directly consumed supplies.
	Parent string `json:"parent,omitempty"`
}

// ProductionSummary is the read-only projection returned to the caller
// after a successful production.
type ProductionSummary struct {
	Record *ProductionRecord `json:"record"`

	ProductName        string         `json:"productName"`
	ProductStockBefore types.Quantity `json:"productStockBefore"`
	ProductStockAfter  types.Quantity `json:"productStockAfter"`

	RawMaterialsConsumed []ConsumedItem `json:"rawMaterialsConsumed"`
	SuppliesConsumed     []ConsumedItem `json:"suppliesConsumed"`

	Warnings []StockWarning `json:"warnings,omitempty"`
}

// summarize projects the committed outcome into the response shape.
func summarize(rec *ProductionRecord, productName string, stockBefore, stockAfter types.Quantity, plan *ConsumptionPlan, warnings []StockWarning) *ProductionSummary {
	s := &ProductionSummary{
		Record:             rec,
		ProductName:        productName,
		ProductStockBefore: stockBefore,
		ProductStockAfter:  stockAfter,
		Warnings:           warnings,
	}

	for _, rm := range plan.RawMaterials {
		s.RawMaterialsConsumed = append(s.RawMaterialsConsumed, ConsumedItem{
			Name:     rm.Name,
			Quantity: rm.NeededKg,
			Unit:     "kg",
		})
	}
	for _, sc := range plan.Supplies {
		s.SuppliesConsumed = append(s.SuppliesConsumed, ConsumedItem{
			Name:     sc.Name,
			Quantity: sc.NeededUnits,
			Unit:     sc.Unit,
		})
	}
	for _, ic := range plan.Ingredients {
		s.SuppliesConsumed = append(s.SuppliesConsumed, ConsumedItem{
			Name:     ic.Name,
			Quantity: ic.NeededUnits,
			Unit:     ic.Unit,
			Parent:   ic.ParentName,
		})
	}

	return s
}
