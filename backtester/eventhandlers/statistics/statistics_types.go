package statistics

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
)

var (
	errNilFill           = errors.New("fill is nil")
	errFillNotSuccess    = errors.New("fill is not marked successful")
	errNilRejection      = errors.New("rejection is nil")
	errFillWriterIsNil   = errors.New("fill writer is nil")
	errCannotPersistFill = errors.New("cannot persist fill")
)

// FillWriter stores a fill durably before it is added to memory
type FillWriter interface {
	Insert(context.Context, *fill.Fill) error
}

// Statistic is the execution log. It keeps every fill appended to it and a
// tally of rejections by reason.
type Statistic struct {
	m          sync.RWMutex
	fills      []*fill.Fill
	rejections map[fill.Reason]int64
	writer     FillWriter
}

// Summary holds aggregate execution statistics. Averages are zero when no
// fills have been recorded.
type Summary struct {
	Count             int64            `json:"count"`
	BuyCount          int64            `json:"buy-count"`
	SellCount         int64            `json:"sell-count"`
	MakerCount        int64            `json:"maker-count"`
	TakerCount        int64            `json:"taker-count"`
	TotalSlippage     decimal.Decimal  `json:"total-slippage"`
	AverageSlippage   decimal.Decimal  `json:"average-slippage"`
	TotalFees         decimal.Decimal  `json:"total-fees"`
	AverageFees       decimal.Decimal  `json:"average-fees"`
	TotalNotional     decimal.Decimal  `json:"total-notional"`
	MedianSlippageBps decimal.Decimal  `json:"median-slippage-bps"`
	StdDevSlippageBps decimal.Decimal  `json:"stddev-slippage-bps"`
	MaxSlippageBps    decimal.Decimal  `json:"max-slippage-bps"`
	Rejections        map[string]int64 `json:"rejections,omitempty"`
}
