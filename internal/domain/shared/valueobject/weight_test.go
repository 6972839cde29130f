package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeight(t *testing.T) {
	w, err := NewWeight(1500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), w.Grams())

	_, err = NewWeight(-1)
	assert.Error(t, err)
}

func TestZeroWeight(t *testing.T) {
	assert.True(t, ZeroWeight().IsZero())
}

func TestWeight_AddAndMultiply(t *testing.T) {
	a, err := NewWeight(1000)
	require.NoError(t, err)
	b, err := NewWeight(250)
	require.NoError(t, err)

	assert.Equal(t, int64(1250), a.Add(b).Grams())
	assert.Equal(t, int64(750), b.MultiplyByInt(3).Grams())
}

func TestWeight_Kg(t *testing.T) {
	w, err := NewWeight(1255)
	require.NoError(t, err)

	// Kg rounds half-up at the requested precision; KgExact keeps the
	// grams/1000 value unrounded.
	assert.Equal(t, "1.26", w.Kg(2).StringFixed(2))
	assert.Equal(t, "1.255", w.KgExact().StringFixed(3))

	half, err := NewWeight(2500)
	require.NoError(t, err)
	assert.True(t, half.Kg(2).Equal(decimal.NewFromFloat(2.5)))
}
