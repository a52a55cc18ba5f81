package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Side enforces a standard for order sides across the code base
type Side uint8

// Order side types
const (
	UnknownSide Side = iota
	Buy
	Sell
)

// Type enforces a standard for order types across the code base
type Type uint8

// Defined package order types
const (
	UnknownType Type = iota
	Market
	Limit
)

// Defaults applied to market parameters that were not supplied with an order
var (
	DefaultVolume24h = decimal.NewFromInt(1000000)
	DefaultSpreadPct = decimal.NewFromFloat(0.1)
)

var (
	// ErrSubmissionIsNil is returned when a nil submission is supplied
	ErrSubmissionIsNil = errors.New("order submission is nil")
	// ErrSymbolIsEmpty is returned when an order has no symbol
	ErrSymbolIsEmpty = errors.New("order symbol is empty")
	// ErrSideIsInvalid is returned when an order side is not supported
	ErrSideIsInvalid = errors.New("order side is invalid")
	// ErrTypeIsInvalid is returned when an order type is not supported
	ErrTypeIsInvalid = errors.New("order type is invalid")
	// ErrAmountIsInvalid is returned when an order amount is not positive
	ErrAmountIsInvalid = errors.New("order amount must be greater than zero")
	// ErrPriceIsInvalid is returned when an order reference price is not positive
	ErrPriceIsInvalid = errors.New("order price must be greater than zero")
	// ErrMarketParamIsInvalid is returned when volume or spread are negative
	ErrMarketParamIsInvalid = errors.New("order market parameter cannot be negative")
)

// Submit contains all properties of an order that may be required
// for an order to be simulated against the ledger
type Submit struct {
	Symbol string
	Side   Side
	Type   Type
	// Amount is the requested base currency quantity before lot size
	// conformance
	Amount decimal.Decimal
	// Price is the reference price the order is expected to execute at
	Price decimal.Decimal
	// Volume24h is the trailing 24h traded volume in base currency used
	// for market impact. Zero disables the volume term.
	Volume24h decimal.Decimal
	// SpreadPct is the bid-ask spread as a percentage of price
	SpreadPct decimal.Decimal
}
