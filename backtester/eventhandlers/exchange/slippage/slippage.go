package slippage

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	bpsDivisor     = decimal.NewFromInt(10000)
	oneHundred     = decimal.NewFromInt(100)
	half           = decimal.NewFromFloat(0.5)
	errNegativeBps = errors.New("base slippage bps cannot be negative")
	errMultiplier  = errors.New("volatility multiplier must be greater than zero")
)

// Model estimates the market impact cost of an order from its size
// relative to traded volume, the bid-ask spread and a volatility multiplier
type Model struct {
	// BaseBps is the minimum slippage applied to every order in basis points
	BaseBps decimal.Decimal
	// VolatilityMultiplier scales the combined rate for volatile markets
	VolatilityMultiplier decimal.Decimal
}

// Validate checks the model coefficients
func (m Model) Validate() error {
	if m.BaseBps.IsNegative() {
		return fmt.Errorf("%w: %v", errNegativeBps, m.BaseBps)
	}
	if !m.VolatilityMultiplier.IsPositive() {
		return fmt.Errorf("%w: %v", errMultiplier, m.VolatilityMultiplier)
	}
	return nil
}

// Rate returns the combined slippage rate for an order, where 0.001 is 0.1%
// of the order's notional value.
// volume24h of zero or less disables the volume impact term.
func (m Model) Rate(orderSize, volume24h, spreadPct decimal.Decimal) decimal.Decimal {
	rate := m.BaseBps.Div(bpsDivisor)
	if volume24h.IsPositive() {
		// participation is expressed as a percentage of 24h volume
		participationPct := orderSize.Div(volume24h).Mul(oneHundred)
		rate = rate.Add(participationPct.Mul(half))
	}
	// half the spread is paid on average
	rate = rate.Add(spreadPct.Div(oneHundred).Div(decimal.NewFromInt(2)))
	return rate.Mul(m.VolatilityMultiplier)
}

// Calculate returns the slippage amount in quote currency for an order of
// orderSize at price. The result is not capped.
func (m Model) Calculate(price, orderSize, volume24h, spreadPct decimal.Decimal) decimal.Decimal {
	return price.Mul(orderSize).Mul(m.Rate(orderSize, volume24h, spreadPct))
}

// ApplyToPrice moves price against the order direction by the per unit
// slippage. Buyers pay more and sellers receive less.
func ApplyToPrice(price, slippage, amount decimal.Decimal, isBuy bool) decimal.Decimal {
	perUnit := slippage.Div(amount)
	if isBuy {
		return price.Add(perUnit)
	}
	return price.Sub(perUnit)
}

// BasisPoints returns the absolute distance between fillPrice and price in
// basis points of price
func BasisPoints(price, fillPrice decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return fillPrice.Sub(price).Abs().Div(price).Mul(bpsDivisor)
}
