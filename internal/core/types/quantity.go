// Package types provides common quantity types and helpers.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity represents a stock or consumption amount with full precision.
// Uses decimal.Decimal so that per-unit rates multiplied across many
// production events never accumulate binary floating-point error.
// Quantities are signed: stock levels are allowed to go negative.
type Quantity = decimal.Decimal

// gramsPerKilogram is the only unit conversion the engine performs.
var gramsPerKilogram = decimal.NewFromInt(1000)

// NewQuantity creates a Quantity from an integer.
func NewQuantity(v int64) Quantity {
	return decimal.NewFromInt(v)
}

// NewQuantityFromString creates a Quantity from a decimal string.
// This is the preferred constructor for request payload values.
func NewQuantityFromString(s string) (Quantity, error) {
	return decimal.NewFromString(s)
}

// MustQuantity creates a Quantity from a string, panics on error.
// Use only for constants and tests.
func MustQuantity(s string) Quantity {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroQuantity returns the zero quantity.
func ZeroQuantity() Quantity {
	return decimal.Zero
}

// GramsToKilograms converts a quantity expressed in grams to kilograms.
// Ingredient rates are stored in grams per produced unit while raw material
// stock is kept in kilograms.
func GramsToKilograms(grams Quantity) Quantity {
	return grams.Div(gramsPerKilogram)
}
