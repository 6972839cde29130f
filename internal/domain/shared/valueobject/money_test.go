package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), KRW)
		require.NoError(t, err)
		assert.Equal(t, KRW, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", UZS)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", UZS)
		assert.Error(t, err)
	})
}

func TestCurrencyConstructors(t *testing.T) {
	assert.Equal(t, KRW, NewMoneyKRW(decimal.NewFromInt(24000)).Currency())
	assert.Equal(t, USD, NewMoneyUSD(decimal.NewFromInt(36)).Currency())
	assert.Equal(t, UZS, NewMoneyUZS(decimal.NewFromInt(432000)).Currency())
}

func TestZero(t *testing.T) {
	m := Zero(USD)
	assert.True(t, m.IsZero())
	assert.Equal(t, USD, m.Currency())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(1)).IsPositive())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
	assert.True(t, NewMoneyUSD(decimal.Zero).IsZero())
}

func TestMoney_Add(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		a := NewMoneyUSD(decimal.NewFromFloat(100.00))
		b := NewMoneyUSD(decimal.NewFromFloat(3.00))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(103.00)))
	})

	t.Run("mismatched currencies", func(t *testing.T) {
		a := NewMoneyUSD(decimal.NewFromInt(100))
		b := NewMoneyUZS(decimal.NewFromInt(100))
		_, err := a.Add(b)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoney_MustAdd_PanicsOnMismatch(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(1))
	b := NewMoneyKRW(decimal.NewFromInt(1))
	assert.Panics(t, func() { a.MustAdd(b) })
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyUZS(decimal.NewFromInt(1392000))
	b := NewMoneyUZS(decimal.NewFromInt(1000000))
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(392000)))

	_, err = a.Subtract(NewMoneyUSD(decimal.NewFromInt(1)))
	assert.Error(t, err)
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(7.50))
	assert.True(t, m.Multiply(decimal.NewFromFloat(1.5)).Amount().Equal(decimal.NewFromFloat(11.25)))
	assert.True(t, m.MultiplyByInt(3).Amount().Equal(decimal.NewFromFloat(22.50)))
}

func TestMoney_Convert(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(11.25))
	converted := m.Convert(decimal.NewFromInt(12700), UZS)
	assert.Equal(t, UZS, converted.Currency())
	assert.Equal(t, "142875.00", converted.Amount().StringFixed(2))
}

func TestMoney_RoundHalfUp(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(10.005))
	assert.Equal(t, "10.01", m.RoundHalfUp(2).Amount().StringFixed(2))
}

func TestRoundHalfUp2(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"116.125", "116.13"},
		{"-2.005", "-2.01"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, RoundHalfUp2(d).StringFixed(2), "round %s", tt.in)
	}
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(10))
	b := NewMoneyUSD(decimal.NewFromInt(20))

	assert.True(t, a.Equals(NewMoneyUSD(decimal.NewFromInt(10))))
	assert.False(t, a.Equals(NewMoneyUZS(decimal.NewFromInt(10))))

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	_, err = a.LessThan(NewMoneyKRW(decimal.NewFromInt(1)))
	assert.Error(t, err)
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(11.25))
	assert.Equal(t, "11.25 USD", m.String())
	assert.Equal(t, "11.250", m.StringFixed(3))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUZS(decimal.NewFromFloat(142875.00))
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_UnmarshalJSON_InvalidAmount(t *testing.T) {
	var m Money
	err := json.Unmarshal([]byte(`{"amount":"abc","currency":"USD"}`), &m)
	assert.Error(t, err)
}

func TestMoney_SQLValueAndScan(t *testing.T) {
	m := NewMoneyUZS(decimal.NewFromFloat(1392000.00))
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "1392000", v)

	t.Run("scans string", func(t *testing.T) {
		var scanned Money
		require.NoError(t, scanned.Scan("1392000.00"))
		assert.True(t, scanned.Amount().Equal(decimal.NewFromInt(1392000)))
		assert.Equal(t, DefaultCurrency, scanned.Currency())
	})

	t.Run("scans bytes", func(t *testing.T) {
		var scanned Money
		require.NoError(t, scanned.Scan([]byte("36.00")))
		assert.True(t, scanned.Amount().Equal(decimal.NewFromInt(36)))
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var scanned Money
		require.NoError(t, scanned.Scan(nil))
		assert.True(t, scanned.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var scanned Money
		assert.Error(t, scanned.Scan(42))
	})
}
