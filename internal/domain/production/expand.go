package production

import (
	"context"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/supply"
)

// maxExpansionDepth bounds how many levels of compound supplies a single
// expansion may traverse. The observed catalogs nest at most two levels;
// anything deeper than this is treated as a modeling error.
const maxExpansionDepth = 16

// workItem is one supply awaiting a sub-recipe check during expansion.
type workItem struct {
	supplyID id.ID
	name     string
	needed   types.Quantity
	depth    int

	// path holds the supply ids already expanded on the way here,
	// to detect cycles per branch.
	path map[id.ID]struct{}
}

// expandCompoundSupplies walks the supply graph breadth-first, turning
// every compound supply consumption into consumptions of its sub-recipe
// ingredients:
//
//	proportionFactor = neededUnits / yieldAmount
//	ingredientNeeded = item.quantity * proportionFactor
//
// Ingredient supplies may themselves be compound, so expansion continues
// until only simple supplies remain. A supply appearing twice on the same
// expansion path means the graph has a cycle, which is a hard error, as is
// exceeding maxExpansionDepth.
func expandCompoundSupplies(ctx context.Context, recipes supply.RecipeSource, plan *ConsumptionPlan) error {
	queue := make([]workItem, 0, len(plan.Supplies))
	for _, sc := range plan.Supplies {
		queue = append(queue, workItem{
			supplyID: sc.SupplyID,
			name:     sc.Name,
			needed:   sc.NeededUnits,
			path:     map[id.ID]struct{}{sc.SupplyID: {}},
		})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth > maxExpansionDepth {
			return apperror.NewSupplyGraphCycle(item.name).
				WithDetail("depth", item.depth)
		}

		subRecipe, err := recipes.GetRecipe(ctx, item.supplyID)
		if err != nil {
			return err
		}
		if subRecipe == nil {
			// Simple supply, nothing to expand.
			continue
		}

		factor := item.needed.Div(subRecipe.YieldAmount)

		for _, ing := range subRecipe.Items {
			if _, seen := item.path[ing.IngredientID]; seen {
				return apperror.NewSupplyGraphCycle(ing.Ingredient.Name)
			}

			needed := ing.Quantity.Mul(factor)

			plan.Ingredients = append(plan.Ingredients, IngredientConsumption{
				SupplyID:     ing.IngredientID,
				Name:         ing.Ingredient.Name,
				Unit:         ing.Ingredient.Unit,
				NeededUnits:  needed,
				CurrentStock: ing.Ingredient.CurrentStock,
				ParentID:     item.supplyID,
				ParentName:   item.name,
			})

			path := make(map[id.ID]struct{}, len(item.path)+1)
			for k := range item.path {
				path[k] = struct{}{}
			}
			path[ing.IngredientID] = struct{}{}

			queue = append(queue, workItem{
				supplyID: ing.IngredientID,
				name:     ing.Ingredient.Name,
				needed:   needed,
				depth:    item.depth + 1,
				path:     path,
			})
		}
	}

	return nil
}
