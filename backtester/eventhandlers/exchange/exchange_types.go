package exchange

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/backtester/funding"
	"github.com/thrasher-corp/execsim/exchanges/fee"
	"github.com/thrasher-corp/execsim/internal/order/limits"
)

// Profile decides whether the exchange adds artificial execution latency
type Profile uint8

// Execution profiles
const (
	UnknownProfile Profile = iota
	// SimulatedLatency sleeps for the configured latency before pricing
	SimulatedLatency
	// PassthroughLatency adds no delay as real latency exists at the call boundary
	PassthroughLatency
)

var (
	// ErrProfileIsInvalid is returned for an unrecognised execution profile
	ErrProfileIsInvalid = errors.New("execution profile is invalid")

	errNilSettings     = errors.New("exchange settings are nil")
	errNilLimits       = errors.New("limits manager is nil")
	errNilSlippage     = errors.New("slippage estimator is nil")
	errNilLedger       = errors.New("ledger is nil")
	errNilExecutionLog = errors.New("execution log is nil")
	errNegativeLatency = errors.New("execution latency cannot be negative")
	errNoStateStore    = errors.New("no state store configured")
	errInvalidOrder    = errors.New("invalid order submission")
	errUnmappedReason  = errors.New("validation failure has no rejection reason")
	errAppendFill      = errors.New("could not append fill to execution log")
	errFillID          = errors.New("could not generate fill id")
)

// SlippageEstimator returns the absolute slippage amount for an order
type SlippageEstimator interface {
	Calculate(price, orderSize, volume24h, spreadPct decimal.Decimal) decimal.Decimal
}

// ExecutionLog receives every successful fill
type ExecutionLog interface {
	Append(*fill.Fill) error
}

// RejectionRecorder is optionally implemented by an ExecutionLog that keeps
// a tally of rejected orders
type RejectionRecorder interface {
	AppendRejection(*fill.Rejection)
}

// StateStore persists and restores ledger snapshots
type StateStore interface {
	Save(context.Context, funding.Snapshot) error
	Load(context.Context) (funding.Snapshot, error)
}

// HistoryExporter writes the execution history somewhere durable
type HistoryExporter interface {
	Export(context.Context) error
}

// EventSink receives pipeline events as they happen
type EventSink interface {
	Filled(*fill.Fill)
	Rejected(*fill.Rejection)
	Fault(operation string, err error)
}

// Settings holds everything required to set up an Exchange. Store, Exporter
// and Sink are optional.
type Settings struct {
	Profile  Profile
	Latency  time.Duration
	Limits   *limits.Manager
	Slippage SlippageEstimator
	Fees     fee.Commission
	Ledger   *funding.Ledger
	Log      ExecutionLog
	Store    StateStore
	Exporter HistoryExporter
	Sink     EventSink
	// SaveAfterFill stores a ledger snapshot after every fill when a Store is set
	SaveAfterFill bool
}

// Exchange simulates order execution against a single ledger
type Exchange struct {
	profile       Profile
	latency       time.Duration
	limits        *limits.Manager
	slippage      SlippageEstimator
	fees          fee.Commission
	ledger        *funding.Ledger
	log           ExecutionLog
	store         StateStore
	exporter      HistoryExporter
	sink          EventSink
	saveAfterFill bool

	// sleep, now and newID are swapped out in tests
	sleep func(time.Duration)
	now   func() time.Time
	newID func() (uuid.UUID, error)

	// storeMtx serialises snapshot writes
	storeMtx sync.Mutex
}
