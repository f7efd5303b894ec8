package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGramsToKilograms(t *testing.T) {
	tests := []struct {
		grams string
		want  string
	}{
		{"1000", "1"},
		{"100", "0.1"},
		{"30000", "30"},
		{"250", "0.25"},
		{"1", "0.001"},
	}

	for _, tt := range tests {
		got := GramsToKilograms(MustQuantity(tt.grams))
		assert.True(t, got.Equal(MustQuantity(tt.want)),
			"%s g = %s kg, got %s", tt.grams, tt.want, got)
	}
}

func TestProportionalScalingIsExact(t *testing.T) {
	// 100 g/unit * 300 units = 30 kg, with no floating point drift
	perUnit := MustQuantity("100")
	produced := MustQuantity("300")

	needed := GramsToKilograms(perUnit.Mul(produced))
	assert.True(t, needed.Equal(MustQuantity("30")))

	// fractional quantities stay exact too
	needed = GramsToKilograms(perUnit.Mul(MustQuantity("2.5")))
	assert.Equal(t, "0.25", needed.String())
}

func TestNewQuantityFromString(t *testing.T) {
	q, err := NewQuantityFromString("12.5")
	require.NoError(t, err)
	assert.True(t, q.Equal(MustQuantity("12.5")))

	_, err = NewQuantityFromString("not-a-number")
	require.Error(t, err)
}
