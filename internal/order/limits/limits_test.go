package limits

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lotSize     = decimal.NewFromFloat(0.00001)
	minNotional = decimal.NewFromInt(10)
)

func defaultLevel() *Level {
	return &Level{
		MinNotional:             minNotional,
		AmountStepIncrementSize: lotSize,
		PricePrecision:          2,
	}
}

func TestConformToDecimalAmount(t *testing.T) {
	t.Parallel()
	l := defaultLevel()
	for _, tc := range []struct {
		in, want string
	}{
		{"0.123456", "0.12345"},
		{"0.1", "0.1"},
		{"0.00001", "0.00001"},
		{"0.000009", "0"},
		{"1.999999999", "1.99999"},
		{"3", "3"},
	} {
		in := decimal.RequireFromString(tc.in)
		got := l.ConformToDecimalAmount(in)
		assert.Truef(t, got.Equal(decimal.RequireFromString(tc.want)), "%s: expected %s received %s", tc.in, tc.want, got)
		assert.True(t, got.LessThanOrEqual(in), "conformed amount must not exceed input")
		assert.True(t, got.Mod(lotSize).IsZero(), "conformed amount must be a multiple of the lot size")
	}

	var nilLevel *Level
	assert.True(t, nilLevel.ConformToDecimalAmount(decimal.NewFromFloat(0.3)).Equal(decimal.NewFromFloat(0.3)))

	noStep := &Level{}
	assert.True(t, noStep.ConformToDecimalAmount(decimal.NewFromFloat(0.123456)).Equal(decimal.NewFromFloat(0.123456)))
}

func TestConformToDecimalAmountProperty(t *testing.T) {
	t.Parallel()
	for _, step := range []string{"0.00001", "0.001", "0.25", "0.3", "5"} {
		l := &Level{AmountStepIncrementSize: decimal.RequireFromString(step)}
		for _, q := range []string{"0.1", "0.7", "1.23456789", "10", "17.3", "0.29999"} {
			in := decimal.RequireFromString(q)
			got := l.ConformToDecimalAmount(in)
			assert.Truef(t, got.Mod(l.AmountStepIncrementSize).IsZero(), "step %s amount %s conformed to %s", step, q, got)
			assert.Truef(t, got.LessThanOrEqual(in), "step %s amount %s conformed to %s", step, q, got)
		}
	}
}

func TestConforms(t *testing.T) {
	t.Parallel()
	l := defaultLevel()
	assert.NoError(t, l.Conforms(decimal.NewFromFloat(0.001), decimal.NewFromInt(50000)))

	err := l.Conforms(decimal.NewFromFloat(0.0001), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ErrNotionalValue)

	err = l.Conforms(decimal.NewFromFloat(0.000123), decimal.NewFromInt(100000))
	assert.ErrorIs(t, err, ErrAmountExceedsStep)

	// notional is checked before the step size
	err = l.Conforms(decimal.NewFromFloat(0.000123), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotionalValue)

	conformed := l.ConformToDecimalAmount(decimal.NewFromFloat(0.000123))
	assert.NoError(t, l.Conforms(conformed, decimal.NewFromInt(100000)))

	var nilLevel *Level
	assert.NoError(t, nilLevel.Conforms(decimal.Zero, decimal.Zero))
}

func TestConformsBelowMinNotionalProperty(t *testing.T) {
	t.Parallel()
	l := defaultLevel()
	for _, tc := range [][2]string{
		{"0.0001", "50"},
		{"0.00019", "50000"},
		{"1", "9.99"},
		{"0.5", "19.98"},
	} {
		err := l.Conforms(decimal.RequireFromString(tc[0]), decimal.RequireFromString(tc[1]))
		assert.ErrorIsf(t, err, ErrNotionalValue, "amount %s price %s", tc[0], tc[1])
	}
}

func TestValidateLevel(t *testing.T) {
	t.Parallel()
	l := defaultLevel()
	require.NoError(t, l.Validate())

	l.MinNotional = decimal.NewFromInt(-1)
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = defaultLevel()
	l.AmountStepIncrementSize = decimal.NewFromInt(-1)
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = defaultLevel()
	l.PricePrecision = -1
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)
}

func TestManager(t *testing.T) {
	t.Parallel()
	_, err := NewManager(Level{MinNotional: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, ErrInvalidLevel)

	m, err := NewManager(*defaultLevel())
	require.NoError(t, err, "NewManager must not error")

	lvl := m.GetOrderExecutionLimits("BTC/USD")
	assert.Equal(t, "BTC/USD", lvl.Symbol)
	assert.True(t, lvl.AmountStepIncrementSize.Equal(lotSize))

	assert.ErrorIs(t, m.LoadLimits(nil), errCannotLoadLimit)
	assert.ErrorIs(t, m.LoadLimits([]Level{{}}), ErrSymbolIsEmpty)
	assert.ErrorIs(t, m.LoadLimits([]Level{{Symbol: "ETH/USD", MinNotional: decimal.NewFromInt(-1)}}), ErrInvalidLevel)

	require.NoError(t, m.LoadLimits([]Level{{
		Symbol:                  "eth/usd",
		MinNotional:             decimal.NewFromInt(5),
		AmountStepIncrementSize: decimal.NewFromFloat(0.001),
	}}))
	lvl = m.GetOrderExecutionLimits("ETH/USD")
	assert.True(t, lvl.MinNotional.Equal(decimal.NewFromInt(5)))
	assert.False(t, lvl.LastUpdated.IsZero())

	lvl = m.GetOrderExecutionLimits("BTC/USD")
	assert.True(t, lvl.MinNotional.Equal(minNotional))
}
