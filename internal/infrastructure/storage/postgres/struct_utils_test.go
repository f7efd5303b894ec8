package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/supply"
)

func TestExtractDBColumns_WalksEmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "current_stock")
	assert.Contains(t, cols, "sale_price")
	assert.Contains(t, cols, "deletion_mark")
}

func TestExtractDBColumns_SkipsIgnoredFields(t *testing.T) {
	cols := ExtractDBColumns[supply.SupplyRecipeItem]()

	assert.Contains(t, cols, "ingredient_id")
	assert.Contains(t, cols, "quantity")
	// Ingredient snapshot is tagged db:"-"
	assert.NotContains(t, cols, "ingredient")
}

func TestStructToMap(t *testing.T) {
	p := product.NewProduct("PD-001", "Espeto de Carne")
	p.CurrentStock = types.MustQuantity("40")

	m := StructToMap(p)
	require.NotEmpty(t, m)

	assert.Equal(t, "PD-001", m["code"])
	assert.Equal(t, "Espeto de Carne", m["name"])
	assert.Equal(t, p.ID, m["id"])

	stock, ok := m["current_stock"].(types.Quantity)
	require.True(t, ok)
	assert.True(t, stock.Equal(types.MustQuantity("40")))
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("text"))
}

func TestStructToMap_IDKeysAreStable(t *testing.T) {
	s := supply.NewSupply("SP-001", "Palito", "un")
	m := StructToMap(s)

	got, ok := m["id"].(id.ID)
	require.True(t, ok)
	assert.Equal(t, s.ID, got)
}
