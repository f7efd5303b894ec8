package production

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/supply"
)

// fakeRecipeSource serves sub-recipes from a map keyed by supply id.
type fakeRecipeSource struct {
	recipes map[id.ID]*supply.SupplyRecipe
}

func (f *fakeRecipeSource) GetRecipe(_ context.Context, supplyID id.ID) (*supply.SupplyRecipe, error) {
	return f.recipes[supplyID], nil
}

func subRecipe(parentID id.ID, yield string, items ...supply.SupplyRecipeItem) *supply.SupplyRecipe {
	r := supply.NewSupplyRecipe(parentID, types.MustQuantity(yield))
	r.Items = items
	return r
}

func recipeItem(ing supply.Ref, quantity string) supply.SupplyRecipeItem {
	return supply.SupplyRecipeItem{
		LineID:       id.New(),
		IngredientID: ing.ID,
		Quantity:     types.MustQuantity(quantity),
		Unit:         ing.Unit,
		Ingredient:   ing,
	}
}

func TestExpand_SimpleSupplyUntouched(t *testing.T) {
	plan := &ConsumptionPlan{
		Supplies: []SupplyConsumption{{
			SupplyID:    id.New(),
			Name:        "Palito",
			NeededUnits: types.MustQuantity("300"),
		}},
	}

	err := expandCompoundSupplies(context.Background(), &fakeRecipeSource{recipes: map[id.ID]*supply.SupplyRecipe{}}, plan)
	require.NoError(t, err)
	assert.Empty(t, plan.Ingredients)
}

func TestExpand_CompoundSupply(t *testing.T) {
	caixa := supply.Ref{ID: id.New(), Name: "Caixa Montada", Unit: "un"}
	papelao := supply.Ref{ID: id.New(), Name: "Papelão", Unit: "un", CurrentStock: types.MustQuantity("100")}

	// 2 units of Papelão yield 10 Caixa Montada
	src := &fakeRecipeSource{recipes: map[id.ID]*supply.SupplyRecipe{
		caixa.ID: subRecipe(caixa.ID, "10", recipeItem(papelao, "2")),
	}}

	plan := &ConsumptionPlan{
		Supplies: []SupplyConsumption{{
			SupplyID:    caixa.ID,
			Name:        caixa.Name,
			NeededUnits: types.MustQuantity("50"),
		}},
	}

	err := expandCompoundSupplies(context.Background(), src, plan)
	require.NoError(t, err)

	require.Len(t, plan.Ingredients, 1)
	ing := plan.Ingredients[0]
	assert.Equal(t, papelao.ID, ing.SupplyID)
	assert.Equal(t, "Papelão", ing.Name)
	// proportionFactor = 50/10 = 5; 2 * 5 = 10
	assert.True(t, ing.NeededUnits.Equal(types.MustQuantity("10")),
		"expected 10, got %s", ing.NeededUnits)
	assert.Equal(t, "Caixa Montada", ing.ParentName)
}

func TestExpand_NestedCompound(t *testing.T) {
	kit := supply.Ref{ID: id.New(), Name: "Kit Embalagem", Unit: "un"}
	caixa := supply.Ref{ID: id.New(), Name: "Caixa Montada", Unit: "un"}
	papelao := supply.Ref{ID: id.New(), Name: "Papelão", Unit: "un"}

	src := &fakeRecipeSource{recipes: map[id.ID]*supply.SupplyRecipe{
		// 1 batch of 5 kits takes 5 caixas
		kit.ID: subRecipe(kit.ID, "5", recipeItem(caixa, "5")),
		// 1 batch of 10 caixas takes 2 papelões
		caixa.ID: subRecipe(caixa.ID, "10", recipeItem(papelao, "2")),
	}}

	plan := &ConsumptionPlan{
		Supplies: []SupplyConsumption{{
			SupplyID:    kit.ID,
			Name:        kit.Name,
			NeededUnits: types.MustQuantity("20"),
		}},
	}

	err := expandCompoundSupplies(context.Background(), src, plan)
	require.NoError(t, err)

	require.Len(t, plan.Ingredients, 2)

	// 20 kits / yield 5 = factor 4; 5 caixas * 4 = 20 caixas
	assert.Equal(t, caixa.ID, plan.Ingredients[0].SupplyID)
	assert.True(t, plan.Ingredients[0].NeededUnits.Equal(types.MustQuantity("20")))
	assert.Equal(t, "Kit Embalagem", plan.Ingredients[0].ParentName)

	// 20 caixas / yield 10 = factor 2; 2 papelões * 2 = 4
	assert.Equal(t, papelao.ID, plan.Ingredients[1].SupplyID)
	assert.True(t, plan.Ingredients[1].NeededUnits.Equal(types.MustQuantity("4")))
	assert.Equal(t, "Caixa Montada", plan.Ingredients[1].ParentName)
}

func TestExpand_DetectsCycle(t *testing.T) {
	a := supply.Ref{ID: id.New(), Name: "Supply A", Unit: "un"}
	b := supply.Ref{ID: id.New(), Name: "Supply B", Unit: "un"}

	src := &fakeRecipeSource{recipes: map[id.ID]*supply.SupplyRecipe{
		a.ID: subRecipe(a.ID, "1", recipeItem(b, "1")),
		b.ID: subRecipe(b.ID, "1", recipeItem(a, "1")),
	}}

	plan := &ConsumptionPlan{
		Supplies: []SupplyConsumption{{
			SupplyID:    a.ID,
			Name:        a.Name,
			NeededUnits: types.MustQuantity("1"),
		}},
	}

	err := expandCompoundSupplies(context.Background(), src, plan)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSupplyGraphCycle))
}
