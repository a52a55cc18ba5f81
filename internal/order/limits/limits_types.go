package limits

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Public errors for order limits
var (
	ErrNotionalValue     = errors.New("total notional value is under minimum limit")
	ErrAmountExceedsStep = errors.New("amount is not divisible by its step")
	ErrInvalidLevel      = errors.New("invalid execution limit level")
	ErrSymbolIsEmpty     = errors.New("limit level symbol is empty")
)

var errCannotLoadLimit = errors.New("cannot load limit, levels not supplied")

// Level defines the order execution constraints for a symbol
type Level struct {
	Symbol string `json:"symbol"`
	// MinNotional is the minimum amount*price an order must carry
	MinNotional decimal.Decimal `json:"minNotional"`
	// AmountStepIncrementSize is the lot size; every executed amount must be
	// an exact multiple of it
	AmountStepIncrementSize decimal.Decimal `json:"lotSize"`
	// PricePrecision is carried for reporting only and is not enforced
	PricePrecision int32     `json:"pricePrecision"`
	LastUpdated    time.Time `json:"-"`
}

// Manager holds a default limit level and per-symbol overrides
type Manager struct {
	fallback Level
	levels   map[string]*Level
	mtx      sync.RWMutex
}
