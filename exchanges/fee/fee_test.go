package fee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultCommission = Commission{
	MakerBps: decimal.NewFromInt(10),
	TakerBps: decimal.NewFromInt(20),
}

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, defaultCommission.Validate())

	c := Commission{MakerBps: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, c.Validate(), errMakerInvalid)

	c = Commission{TakerBps: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, c.Validate(), errTakerInvalid)

	c = Commission{MakerBps: decimal.NewFromInt(1500), TakerBps: decimal.NewFromInt(2000)}
	assert.NoError(t, c.Validate(), "high rates are permitted")
	assert.True(t, c.ExceedsThreshold())
	assert.True(t, Commission{TakerBps: decimal.NewFromInt(1500)}.ExceedsThreshold())
	assert.False(t, defaultCommission.ExceedsThreshold())

	inverted := Commission{MakerBps: decimal.NewFromInt(20), TakerBps: decimal.NewFromInt(10)}
	assert.NoError(t, inverted.Validate())
	assert.True(t, inverted.IsInverted())
	assert.False(t, defaultCommission.IsInverted())
}

func TestCalculateMaker(t *testing.T) {
	t.Parallel()
	fee := defaultCommission.Calculate(decimal.NewFromInt(5000), true)
	assert.Truef(t, fee.Equal(decimal.NewFromInt(5)), "expected 5 received %s", fee)
}

func TestCalculateTaker(t *testing.T) {
	t.Parallel()
	fee := defaultCommission.Calculate(decimal.NewFromInt(5000), false)
	assert.Truef(t, fee.Equal(decimal.NewFromInt(10)), "expected 10 received %s", fee)

	fee = Commission{TakerBps: decimal.NewFromInt(20)}.Calculate(decimal.NewFromFloat(5009), false)
	assert.Truef(t, fee.Equal(decimal.NewFromFloat(10.018)), "expected 10.018 received %s", fee)
}

func TestCalculateNegativeNotional(t *testing.T) {
	t.Parallel()
	fee := defaultCommission.Calculate(decimal.RequireFromString("-400.1"), false)
	assert.Truef(t, fee.Equal(decimal.RequireFromString("-0.8002")), "expected -0.8002 received %s", fee)
}

func TestMakerCheaperThanTaker(t *testing.T) {
	t.Parallel()
	for _, n := range []float64{0.01, 1, 5000, 123456.789} {
		notional := decimal.NewFromFloat(n)
		maker := defaultCommission.Calculate(notional, true)
		taker := defaultCommission.Calculate(notional, false)
		assert.Truef(t, maker.LessThan(taker), "maker fee %s should be lower than taker fee %s", maker, taker)
	}
}
