package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

func TestEvaluateStock_NoWarningsWhenSufficient(t *testing.T) {
	plan := &ConsumptionPlan{
		RawMaterials: []RawMaterialConsumption{{
			Name: "Carne", NeededKg: types.MustQuantity("30"), CurrentStock: types.MustQuantity("50"),
		}},
		Supplies: []SupplyConsumption{{
			Name: "Palito", Unit: "un", NeededUnits: types.MustQuantity("300"), CurrentStock: types.MustQuantity("1000"),
		}},
	}

	assert.Empty(t, evaluateStock(plan))
}

func TestEvaluateStock_WarnsWithNegativeResulting(t *testing.T) {
	plan := &ConsumptionPlan{
		RawMaterials: []RawMaterialConsumption{{
			RawMaterialID: id.New(),
			Name:          "Carne",
			NeededKg:      types.MustQuantity("30"),
			CurrentStock:  types.MustQuantity("12.5"),
		}},
	}

	warnings := evaluateStock(plan)
	require.Len(t, warnings, 1)

	w := warnings[0]
	assert.Equal(t, "Carne", w.Name)
	assert.True(t, w.Available.Equal(types.MustQuantity("12.5")))
	assert.True(t, w.Needed.Equal(types.MustQuantity("30")))
	// no clamping to zero: resulting is exactly previous - needed
	assert.True(t, w.Resulting.Equal(types.MustQuantity("-17.5")))
}

func TestEvaluateStock_CoversAllTiers(t *testing.T) {
	plan := &ConsumptionPlan{
		RawMaterials: []RawMaterialConsumption{{
			Name: "Carne", NeededKg: types.MustQuantity("5"), CurrentStock: types.MustQuantity("1"),
		}},
		Supplies: []SupplyConsumption{{
			Name: "Caixa Montada", Unit: "un", NeededUnits: types.MustQuantity("50"), CurrentStock: types.MustQuantity("20"),
		}},
		Ingredients: []IngredientConsumption{{
			Name: "Papelão", Unit: "un", NeededUnits: types.MustQuantity("10"), CurrentStock: types.MustQuantity("3"),
			ParentName: "Caixa Montada",
		}},
	}

	warnings := evaluateStock(plan)
	require.Len(t, warnings, 3)
	assert.Equal(t, "Carne", warnings[0].Name)
	assert.Equal(t, "Caixa Montada", warnings[1].Name)
	assert.Equal(t, "Papelão", warnings[2].Name)
}
