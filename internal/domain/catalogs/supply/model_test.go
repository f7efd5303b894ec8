package supply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

func TestSupplyValidate_RequiresUnit(t *testing.T) {
	s := NewSupply("SP-001", "Palito", "un")
	require.NoError(t, s.Validate(context.Background()))

	s.Unit = ""
	err := s.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestSupplyRecipeValidate(t *testing.T) {
	parentID := id.New()

	t.Run("valid", func(t *testing.T) {
		r := NewSupplyRecipe(parentID, types.MustQuantity("10"))
		r.AddItem(id.New(), types.MustQuantity("2"), "un")
		require.NoError(t, r.Validate(context.Background()))
	})

	t.Run("zero yield", func(t *testing.T) {
		r := NewSupplyRecipe(parentID, types.MustQuantity("0"))
		r.AddItem(id.New(), types.MustQuantity("2"), "un")
		require.Error(t, r.Validate(context.Background()))
	})

	t.Run("no items", func(t *testing.T) {
		r := NewSupplyRecipe(parentID, types.MustQuantity("10"))
		require.Error(t, r.Validate(context.Background()))
	})

	t.Run("self ingredient", func(t *testing.T) {
		r := NewSupplyRecipe(parentID, types.MustQuantity("10"))
		r.AddItem(parentID, types.MustQuantity("1"), "un")
		err := r.Validate(context.Background())
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("non-positive item quantity", func(t *testing.T) {
		r := NewSupplyRecipe(parentID, types.MustQuantity("10"))
		r.AddItem(id.New(), types.MustQuantity("-1"), "un")
		require.Error(t, r.Validate(context.Background()))
	})
}

func TestAddItem_NumbersLines(t *testing.T) {
	r := NewSupplyRecipe(id.New(), types.MustQuantity("10"))
	r.AddItem(id.New(), types.MustQuantity("2"), "un")
	r.AddItem(id.New(), types.MustQuantity("3"), "un")

	require.Len(t, r.Items, 2)
	assert.Equal(t, 1, r.Items[0].LineNo)
	assert.Equal(t, 2, r.Items[1].LineNo)
}
