package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

var gramsPerKg = decimal.NewFromInt(1000)

// Weight is a value object representing a packaged weight.
// Stored as integer grams; kilogram views are derived with a controlled
// number of decimal places so every consumer rounds the same way.
type Weight struct {
	grams int64
}

// NewWeight creates a Weight from grams
func NewWeight(grams int64) (Weight, error) {
	if grams < 0 {
		return Weight{}, errors.New("weight cannot be negative")
	}
	return Weight{grams: grams}, nil
}

// ZeroWeight returns a zero Weight
func ZeroWeight() Weight {
	return Weight{}
}

// Grams returns the weight in grams
func (w Weight) Grams() int64 {
	return w.grams
}

// IsZero returns true if the weight is zero
func (w Weight) IsZero() bool {
	return w.grams == 0
}

// Add returns the sum of two weights
func (w Weight) Add(other Weight) Weight {
	return Weight{grams: w.grams + other.grams}
}

// MultiplyByInt returns the weight multiplied by a quantity
func (w Weight) MultiplyByInt(factor int64) Weight {
	return Weight{grams: w.grams * factor}
}

// Kg returns the weight in kilograms rounded half-up to the given places
func (w Weight) Kg(places int32) decimal.Decimal {
	return decimal.NewFromInt(w.grams).Div(gramsPerKg).Round(places)
}

// KgExact returns the weight in kilograms without rounding
func (w Weight) KgExact() decimal.Decimal {
	return decimal.NewFromInt(w.grams).Div(gramsPerKg)
}
