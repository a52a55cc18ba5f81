package replay

import (
	"errors"

	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"golang.org/x/time/rate"
)

var (
	errNilExecutor       = errors.New("executor is nil")
	errNoOrders          = errors.New("no orders supplied")
	errInvalidRow        = errors.New("invalid order row")
	errInvalidRate       = errors.New("orders per second cannot be negative")
	errInvalidBurst      = errors.New("burst must be at least 1")
	errOrderFileNotFound = errors.New("order file not found")
)

// Executor simulates a single order
type Executor interface {
	ExecuteOrder(order.Submit) (fill.Result, error)
}

// Row is a single CSV order line. Volume and spread may be left empty to
// use the order defaults.
type Row struct {
	Symbol    string `csv:"symbol"`
	Side      string `csv:"side"`
	Type      string `csv:"type"`
	Amount    string `csv:"amount"`
	Price     string `csv:"price"`
	Volume24h string `csv:"volume_24h"`
	SpreadPct string `csv:"spread_pct"`
}

// Runner submits order batches to an executor at a limited pace
type Runner struct {
	exec    Executor
	limiter *rate.Limiter
}

// Fault records an infrastructure error raised for one order of a batch
type Fault struct {
	Index int
	Err   error
}

// Outcome holds the results of a replayed batch in submission order
type Outcome struct {
	Results  []fill.Result
	Filled   int
	Rejected int
	Faults   []Fault
}
