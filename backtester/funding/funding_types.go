package funding

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/exchanges/order"
)

var (
	// ErrInsufficientCash is returned when a buy costs more than the cash held
	ErrInsufficientCash = errors.New("insufficient cash")
	// ErrInsufficientPosition is returned when a sell exceeds the position held
	ErrInsufficientPosition = errors.New("insufficient position")
	// ErrInvalidSnapshot is returned when a snapshot would break ledger invariants
	ErrInvalidSnapshot = errors.New("invalid ledger snapshot")

	errNilLedger      = errors.New("ledger is nil")
	errNegativeFunds  = errors.New("initial funds cannot be negative")
	errInvalidAmount  = errors.New("transaction amount must be greater than zero")
	errNegativeValue  = errors.New("buy notional and fee cannot be negative")
	errSymbolIsEmpty  = errors.New("transaction symbol is empty")
	errCannotAllocate = errors.New("cannot allocate funds")
)

// Ledger holds the cash balance and base currency positions of a trading
// session. Cash and every position are never negative.
type Ledger struct {
	m         sync.Mutex
	cash      decimal.Decimal
	positions map[string]decimal.Decimal
}

// Transaction is a settled order to be applied to the ledger
type Transaction struct {
	Symbol   string
	Side     order.Side
	Amount   decimal.Decimal
	Notional decimal.Decimal
	Fee      decimal.Decimal
}

// Snapshot is a point in time copy of the ledger
type Snapshot struct {
	Cash      decimal.Decimal            `json:"cash"`
	Positions map[string]decimal.Decimal `json:"positions"`
}
