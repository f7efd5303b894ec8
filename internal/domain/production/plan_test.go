package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/domain/recipe"
)

func testContext(rcp *recipe.Recipe) *ProductionContext {
	p := product.NewProduct("PD-001", "Espeto de Carne")
	if rcp != nil && id.IsNil(rcp.ProductID) {
		rcp.ProductID = p.ID
	}
	return &ProductionContext{Product: p, Recipe: rcp}
}

func TestComputeConsumption_RawMaterialScaling(t *testing.T) {
	rcp := recipe.NewRecipe(id.New())
	rcp.AddLine(id.New(), types.MustQuantity("100")) // 100 g per unit
	rcp.Lines[0].RawMaterialName = "Carne"
	rcp.Lines[0].RawMaterialStock = types.MustQuantity("50")

	plan, err := computeConsumption(testContext(rcp), types.MustQuantity("300"))
	require.NoError(t, err)

	require.Len(t, plan.RawMaterials, 1)
	assert.True(t, plan.RawMaterials[0].NeededKg.Equal(types.MustQuantity("30")),
		"100 g/unit * 300 units = 30 kg, got %s", plan.RawMaterials[0].NeededKg)
}

func TestComputeConsumption_FractionalQuantity(t *testing.T) {
	rcp := recipe.NewRecipe(id.New())
	rcp.AddLine(id.New(), types.MustQuantity("100"))

	plan, err := computeConsumption(testContext(rcp), types.MustQuantity("2.5"))
	require.NoError(t, err)

	// 100 g * 2.5 / 1000 = 0.25 kg, exactly
	assert.True(t, plan.RawMaterials[0].NeededKg.Equal(types.MustQuantity("0.25")))
}

func TestComputeConsumption_SupplyScaling(t *testing.T) {
	palito := &supply.Ref{
		ID:           id.New(),
		Name:         "Palito",
		Unit:         "un",
		CurrentStock: types.MustQuantity("1000"),
	}

	rcp := recipe.NewRecipe(id.New())
	rcp.AddLine(id.New(), types.MustQuantity("100"))
	rcp.AddSupplyLine(palito.ID, types.MustQuantity("1"))
	rcp.SupplyLines[0].Resolved = palito

	plan, err := computeConsumption(testContext(rcp), types.MustQuantity("300"))
	require.NoError(t, err)

	require.Len(t, plan.Supplies, 1)
	assert.Equal(t, "Palito", plan.Supplies[0].Name)
	assert.True(t, plan.Supplies[0].NeededUnits.Equal(types.MustQuantity("300")))
}

func TestComputeConsumption_SkipsUnresolvedSupplyLines(t *testing.T) {
	rcp := recipe.NewRecipe(id.New())
	rcp.AddLine(id.New(), types.MustQuantity("50"))
	// legacy row: SupplyID present but never resolved to a supply
	rcp.AddSupplyLine(id.New(), types.MustQuantity("1"))

	plan, err := computeConsumption(testContext(rcp), types.MustQuantity("10"))
	require.NoError(t, err)

	assert.Empty(t, plan.Supplies)
	assert.Len(t, plan.RawMaterials, 1)
}

func TestComputeConsumption_RejectsNonPositiveQuantity(t *testing.T) {
	rcp := recipe.NewRecipe(id.New())
	rcp.AddLine(id.New(), types.MustQuantity("100"))

	for _, q := range []string{"0", "-5"} {
		_, err := computeConsumption(testContext(rcp), types.MustQuantity(q))
		require.Error(t, err, "quantity %s", q)
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidQuantity))
	}
}
