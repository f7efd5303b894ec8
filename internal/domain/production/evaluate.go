package production

import (
	"espetaria/internal/core/types"
)

// StockWarning flags a planned consumption that exceeds current stock.
// Warnings are advisory only: negative stock is an accepted business
// state and never blocks the commit.
type StockWarning struct {
	Name      string         `json:"name"`
	Unit      string         `json:"unit,omitempty"`
	Available types.Quantity `json:"available"`
	Needed    types.Quantity `json:"needed"`
	Resulting types.Quantity `json:"resulting"`
}

// evaluateStock compares every planned consumption against current stock
// and collects a warning for each shortfall. It never fails and never
// mutates the plan.
func evaluateStock(plan *ConsumptionPlan) []StockWarning {
	var warnings []StockWarning

	for _, rm := range plan.RawMaterials {
		if rm.CurrentStock.LessThan(rm.NeededKg) {
			warnings = append(warnings, StockWarning{
				Name:      rm.Name,
				Unit:      "kg",
				Available: rm.CurrentStock,
				Needed:    rm.NeededKg,
				Resulting: rm.CurrentStock.Sub(rm.NeededKg),
			})
		}
	}

	for _, sc := range plan.Supplies {
		if sc.CurrentStock.LessThan(sc.NeededUnits) {
			warnings = append(warnings, StockWarning{
				Name:      sc.Name,
				Unit:      sc.Unit,
				Available: sc.CurrentStock,
				Needed:    sc.NeededUnits,
				Resulting: sc.CurrentStock.Sub(sc.NeededUnits),
			})
		}
	}

	for _, ic := range plan.Ingredients {
		if ic.CurrentStock.LessThan(ic.NeededUnits) {
			warnings = append(warnings, StockWarning{
				Name:      ic.Name,
				Unit:      ic.Unit,
				Available: ic.CurrentStock,
				Needed:    ic.NeededUnits,
				Resulting: ic.CurrentStock.Sub(ic.NeededUnits),
			})
		}
	}

	return warnings
}
