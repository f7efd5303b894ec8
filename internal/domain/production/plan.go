package production

import (
	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/recipe"
)

// ProductionContext is everything the engine needs to read before it can
// plan a production: the product, its active recipe with raw material
// snapshots, and the resolved supply snapshots.
type ProductionContext struct {
	Product *product.Product
	Recipe  *recipe.Recipe
}

// RawMaterialConsumption is the planned consumption of one raw material,
// in kilograms.
type RawMaterialConsumption struct {
	RawMaterialID id.ID
	Name          string
	NeededKg      types.Quantity
	CurrentStock  types.Quantity
}

// SupplyConsumption is the planned consumption of one supply referenced
// directly by the recipe, in the supply's own unit.
type SupplyConsumption struct {
	SupplyID     id.ID
	Name         string
	Unit         string
	NeededUnits  types.Quantity
	CurrentStock types.Quantity
}

// IngredientConsumption is the consumption of a supply discovered by
// expanding a compound supply's sub-recipe. ParentName records which
// compound supply drove the consumption, for the movement notes.
type IngredientConsumption struct {
	SupplyID     id.ID
	Name         string
	Unit         string
	NeededUnits  types.Quantity
	CurrentStock types.Quantity

	ParentID   id.ID
	ParentName string
}

// ConsumptionPlan is the full set of quantities one production will take
// from stock, split by tier.
type ConsumptionPlan struct {
	QuantityProduced types.Quantity

	RawMaterials []RawMaterialConsumption
	Supplies     []SupplyConsumption
	Ingredients  []IngredientConsumption
}

// computeConsumption scales the recipe's per-unit rates by the produced
// quantity in full decimal precision:
//
//	neededKg    = gramsPerUnit * quantity / 1000
//	neededUnits = perUnit * quantity
//
// Supply lines that never resolved to a supply are skipped; they are
// tolerated legacy data, not errors.
func computeConsumption(ctx *ProductionContext, quantity types.Quantity) (*ConsumptionPlan, error) {
	if !quantity.IsPositive() {
		return nil, apperror.NewInvalidQuantity(quantity.String())
	}

	plan := &ConsumptionPlan{QuantityProduced: quantity}

	for _, line := range ctx.Recipe.Lines {
		neededKg := types.GramsToKilograms(line.GramsPerUnit.Mul(quantity))
		plan.RawMaterials = append(plan.RawMaterials, RawMaterialConsumption{
			RawMaterialID: line.RawMaterialID,
			Name:          line.RawMaterialName,
			NeededKg:      neededKg,
			CurrentStock:  line.RawMaterialStock,
		})
	}

	for _, line := range ctx.Recipe.SupplyLines {
		if line.Resolved == nil {
			continue
		}
		plan.Supplies = append(plan.Supplies, SupplyConsumption{
			SupplyID:     line.Resolved.ID,
			Name:         line.Resolved.Name,
			Unit:         line.Resolved.Unit,
			NeededUnits:  line.PerUnit.Mul(quantity),
			CurrentStock: line.Resolved.CurrentStock,
		})
	}

	return plan, nil
}
