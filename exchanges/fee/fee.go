package fee

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate validates commission variables
func (c Commission) Validate() error {
	if c.MakerBps.IsNegative() {
		return fmt.Errorf("%w: %v", errMakerInvalid, c.MakerBps)
	}
	if c.TakerBps.IsNegative() {
		return fmt.Errorf("%w: %v", errTakerInvalid, c.TakerBps)
	}
	return nil
}

// ExceedsThreshold returns whether either rate is at or above 15%, which
// usually means a percentage was entered where basis points were expected
func (c Commission) ExceedsThreshold() bool {
	return c.MakerBps.GreaterThanOrEqual(RateThresholdBps) ||
		c.TakerBps.GreaterThanOrEqual(RateThresholdBps)
}

// IsInverted returns whether the maker rate is above the taker rate, which
// is unusual for an exchange fee schedule
func (c Commission) IsInverted() bool {
	return c.MakerBps.GreaterThan(c.TakerBps)
}

// Rate returns the fee in basis points for the liquidity classification
func (c Commission) Rate(isMaker bool) decimal.Decimal {
	if isMaker {
		return c.MakerBps
	}
	return c.TakerBps
}

// Calculate returns the fee in quote currency for a trade of notional value.
// The fee carries the sign of notional.
func (c Commission) Calculate(notional decimal.Decimal, isMaker bool) decimal.Decimal {
	return notional.Mul(c.Rate(isMaker)).Div(bpsDivisor)
}
