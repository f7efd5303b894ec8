package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

func TestNewMovementBase_DerivesNewStock(t *testing.T) {
	m := NewMovementBase(id.New(), types.MustQuantity("-30"), types.MustQuantity("50"), "consumption", "maria")

	assert.True(t, m.NewStock.Equal(types.MustQuantity("20")))
	assert.True(t, m.Consistent())
}

func TestNewMovementBase_NegativeResultAllowed(t *testing.T) {
	m := NewMovementBase(id.New(), types.MustQuantity("-30"), types.MustQuantity("12.5"), "consumption", "maria")

	assert.True(t, m.NewStock.Equal(types.MustQuantity("-17.5")))
	assert.True(t, m.Consistent())
}

func TestMovementType_DerivedFromSign(t *testing.T) {
	prodID := id.New()

	entry := NewStockMovement(prodID, id.New(), types.MustQuantity("300"), types.MustQuantity("40"), "production", "maria")
	assert.Equal(t, MovementEntry, entry.Type)

	exit := NewRawMaterialMovement(prodID, id.New(), types.MustQuantity("-30"), types.MustQuantity("50"), "production", "maria")
	assert.Equal(t, MovementExit, exit.Type)

	out := NewSupplyMovement(prodID, id.New(), types.MustQuantity("-300"), types.MustQuantity("1000"), SupplyReasonProduction, "", "maria")
	assert.Equal(t, SupplyMovementOut, out.Type)

	in := NewSupplyMovement(prodID, id.New(), types.MustQuantity("10"), types.MustQuantity("0"), "adjustment", "", "maria")
	assert.Equal(t, SupplyMovementIn, in.Type)
}

func TestSupplyMovement_Magnitude(t *testing.T) {
	m := NewSupplyMovement(id.New(), id.New(), types.MustQuantity("-300"), types.MustQuantity("1000"), SupplyReasonProduction, "", "maria")

	require.True(t, m.Quantity.IsNegative())
	assert.True(t, m.Magnitude().Equal(types.MustQuantity("300")))
}
