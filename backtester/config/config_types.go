package config

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/log"
)

// EnvPrefix is prepended to environment variable overrides, for example
// EXECSIM_FUNDING_INITIALCASH
const EnvPrefix = "EXECSIM"

// Default values
const (
	DefaultProfile            = "simulated"
	DefaultExecutionLatencyMs = 100
	DefaultPricePrecision     = 2
	DefaultOrdersPerSecond    = 0
	DefaultReplayBurst        = 1
)

// Default decimal values
var (
	DefaultBaseSlippageBps      = decimal.NewFromInt(5)
	DefaultVolatilityMultiplier = decimal.NewFromInt(1)
	DefaultMakerFeeBps          = decimal.NewFromInt(10)
	DefaultTakerFeeBps          = decimal.NewFromInt(20)
	DefaultMinNotional          = decimal.NewFromInt(10)
	DefaultLotSize              = decimal.RequireFromString("0.00001")
	DefaultInitialCash          = decimal.NewFromInt(10000)
)

var (
	errConfigFileNotFound = errors.New("config file not found")
	errNegativeValue      = errors.New("value cannot be negative")
	errReplayBurstInvalid = errors.New("replay burst must be at least 1")
	errNilConfig          = errors.New("config is nil")
)

// Config defines a simulation session
type Config struct {
	Nickname    string              `json:"nickname"`
	Execution   ExecutionSettings   `json:"execution"`
	Slippage    SlippageSettings    `json:"slippage"`
	Fees        FeeSettings         `json:"fees"`
	Limits      LimitSettings       `json:"limits"`
	Funding     FundingSettings     `json:"funding"`
	Persistence PersistenceSettings `json:"persistence"`
	Output      OutputSettings      `json:"output"`
	Replay      ReplaySettings      `json:"replay"`
	Database    database.Config     `json:"database"`
	Logging     log.Config          `json:"logging"`
}

// ExecutionSettings controls the execution profile
type ExecutionSettings struct {
	Profile   string `json:"profile"`
	LatencyMs int64  `json:"latencyMs"`
}

// SlippageSettings holds the slippage model coefficients
type SlippageSettings struct {
	BaseBps              decimal.Decimal `json:"baseBps"`
	VolatilityMultiplier decimal.Decimal `json:"volatilityMultiplier"`
}

// FeeSettings holds maker and taker rates in basis points
type FeeSettings struct {
	MakerBps decimal.Decimal `json:"makerBps"`
	TakerBps decimal.Decimal `json:"takerBps"`
}

// LimitSettings holds the default order limits and per symbol overrides
type LimitSettings struct {
	MinNotional    decimal.Decimal `json:"minNotional"`
	LotSize        decimal.Decimal `json:"lotSize"`
	PricePrecision int32           `json:"pricePrecision"`
	Symbols        []SymbolLimit   `json:"symbols,omitempty"`
}

// SymbolLimit overrides the default limits for one symbol
type SymbolLimit struct {
	Symbol         string          `json:"symbol"`
	MinNotional    decimal.Decimal `json:"minNotional"`
	LotSize        decimal.Decimal `json:"lotSize"`
	PricePrecision int32           `json:"pricePrecision"`
}

// FundingSettings holds the starting ledger
type FundingSettings struct {
	InitialCash decimal.Decimal `json:"initialCash"`
}

// PersistenceSettings selects where ledger snapshots are kept. Store uses
// the fs:<path>, leveldb:<path> or db forms and may be empty.
type PersistenceSettings struct {
	Store         string `json:"store"`
	LoadOnStart   bool   `json:"loadOnStart"`
	SaveAfterFill bool   `json:"saveAfterFill"`
}

// OutputSettings selects where execution history is exported
type OutputSettings struct {
	JSONPath string `json:"jsonPath"`
	CSVPath  string `json:"csvPath"`
}

// ReplaySettings paces batch order submission. Zero orders per second means
// unlimited.
type ReplaySettings struct {
	OrdersPerSecond float64 `json:"ordersPerSecond"`
	Burst           int     `json:"burst"`
}
