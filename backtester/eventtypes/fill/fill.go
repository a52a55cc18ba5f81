package fill

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/exchanges/order"
)

// IsFilled returns true for fills
func (f *Fill) IsFilled() bool {
	return true
}

// GetSymbol returns the symbol
func (f *Fill) GetSymbol() string {
	return f.Symbol
}

// GetSide returns the order side
func (f *Fill) GetSide() order.Side {
	return f.Side
}

// GetAmount returns the executed amount
func (f *Fill) GetAmount() decimal.Decimal {
	return f.Amount
}

func (f *Fill) isResult() {}

// TotalCost returns the quote currency leaving or entering the ledger once
// fees are considered
func (f *Fill) TotalCost() decimal.Decimal {
	switch f.Side {
	case order.Buy:
		return f.Notional.Add(f.Fee)
	case order.Sell:
		return f.Notional.Sub(f.Fee)
	case order.UnknownSide:
	}
	return f.Notional
}

// IsFilled returns false for rejections
func (r *Rejection) IsFilled() bool {
	return false
}

// GetSymbol returns the symbol
func (r *Rejection) GetSymbol() string {
	return r.Symbol
}

// GetSide returns the order side
func (r *Rejection) GetSide() order.Side {
	return r.Side
}

// GetAmount returns the amount after lot size conformance
func (r *Rejection) GetAmount() decimal.Decimal {
	return r.Amount
}

func (r *Rejection) isResult() {}

// Error returns a readable description of the rejection
func (r *Rejection) Error() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s %s %s rejected: %s", r.Side, r.Amount, r.Symbol, r.Reason)
	}
	return fmt.Sprintf("%s %s %s rejected: %s: %s", r.Side, r.Amount, r.Symbol, r.Reason, r.Detail)
}

// String implements the stringer interface
func (r Reason) String() string {
	switch r {
	case BelowMinNotional:
		return "BelowMinNotional"
	case LotSizeViolation:
		return "LotSizeViolation"
	case InsufficientCash:
		return "InsufficientCash"
	case InsufficientPosition:
		return "InsufficientPosition"
	case UnknownReason:
		return "Unknown"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(r))
}

// MarshalText implements encoding.TextMarshaler
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Reason) UnmarshalText(data []byte) error {
	for _, candidate := range []Reason{BelowMinNotional, LotSizeViolation, InsufficientCash, InsufficientPosition} {
		if strings.EqualFold(candidate.String(), string(data)) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrReasonIsInvalid, data)
}
