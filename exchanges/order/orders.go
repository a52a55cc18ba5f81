package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NewMarketSubmit returns a market order submission with default market
// parameters
func NewMarketSubmit(symbol string, side Side, amount, price decimal.Decimal) *Submit {
	return &Submit{
		Symbol:    symbol,
		Side:      side,
		Type:      Market,
		Amount:    amount,
		Price:     price,
		Volume24h: DefaultVolume24h,
		SpreadPct: DefaultSpreadPct,
	}
}

// Validate checks the supplied data and returns whether or not it's valid
func (s *Submit) Validate() error {
	if s == nil {
		return ErrSubmissionIsNil
	}
	if s.Symbol == "" {
		return ErrSymbolIsEmpty
	}
	if !s.Side.IsValid() {
		return fmt.Errorf("%w: %v", ErrSideIsInvalid, s.Side)
	}
	if !s.Type.IsValid() {
		return fmt.Errorf("%w: %v", ErrTypeIsInvalid, s.Type)
	}
	if !s.Amount.IsPositive() {
		return fmt.Errorf("%w: %v", ErrAmountIsInvalid, s.Amount)
	}
	if !s.Price.IsPositive() {
		return fmt.Errorf("%w: %v", ErrPriceIsInvalid, s.Price)
	}
	if s.Volume24h.IsNegative() {
		return fmt.Errorf("%w: volume %v", ErrMarketParamIsInvalid, s.Volume24h)
	}
	if s.SpreadPct.IsNegative() {
		return fmt.Errorf("%w: spread %v", ErrMarketParamIsInvalid, s.SpreadPct)
	}
	return nil
}

// IsValid returns whether the side is one of the supported sides
func (s Side) IsValid() bool {
	switch s {
	case Buy, Sell:
		return true
	case UnknownSide:
		return false
	}
	return false
}

// String implements the stringer interface
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case UnknownSide:
		return "UNKNOWN"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
}

// Lower returns the side lower case string
func (s Side) Lower() string {
	return strings.ToLower(s.String())
}

// MarshalText implements encoding.TextMarshaler
func (s Side) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrSideIsInvalid, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Side) UnmarshalText(data []byte) error {
	side, err := StringToOrderSide(string(data))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// IsValid returns whether the type is one of the supported order types
func (t Type) IsValid() bool {
	switch t {
	case Market, Limit:
		return true
	case UnknownType:
		return false
	}
	return false
}

// IsMaker returns whether the order type is classified as providing
// liquidity. Limit orders are always maker and market orders are always taker.
func (t Type) IsMaker() bool {
	switch t {
	case Limit:
		return true
	case Market, UnknownType:
		return false
	}
	return false
}

// String implements the stringer interface
func (t Type) String() string {
	switch t {
	case Market:
		return "MARKET"
	case Limit:
		return "LIMIT"
	case UnknownType:
		return "UNKNOWN"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
}

// Lower returns the type lower case string
func (t Type) Lower() string {
	return strings.ToLower(t.String())
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrTypeIsInvalid, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Type) UnmarshalText(data []byte) error {
	oType, err := StringToOrderType(string(data))
	if err != nil {
		return err
	}
	*t = oType
	return nil
}

// StringToOrderSide for converting case insensitive order side
// and returning a real Side
func StringToOrderSide(side string) (Side, error) {
	switch {
	case strings.EqualFold(side, Buy.String()):
		return Buy, nil
	case strings.EqualFold(side, Sell.String()):
		return Sell, nil
	default:
		return UnknownSide, fmt.Errorf("%w: %q not recognised as side type", ErrSideIsInvalid, side)
	}
}

// StringToOrderType for converting case insensitive order type
// and returning a real Type
func StringToOrderType(oType string) (Type, error) {
	switch {
	case strings.EqualFold(oType, Market.String()):
		return Market, nil
	case strings.EqualFold(oType, Limit.String()):
		return Limit, nil
	default:
		return UnknownType, fmt.Errorf("%w: %q not recognised as order type", ErrTypeIsInvalid, oType)
	}
}
