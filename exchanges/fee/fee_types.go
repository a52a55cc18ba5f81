package fee

import (
	"errors"

	"github.com/shopspring/decimal"
)

// RateThresholdBps is the rate at which a fee is likely misconfigured
var RateThresholdBps = decimal.NewFromInt(1500)

var (
	errMakerInvalid = errors.New("maker is invalid")
	errTakerInvalid = errors.New("taker is invalid")
	bpsDivisor      = decimal.NewFromInt(10000)
)

// Commission defines a maker/taker trading fee structure in basis points
type Commission struct {
	// MakerBps defines the fee when you provide liquidity for the orderbooks
	MakerBps decimal.Decimal `json:"makerBps"`
	// TakerBps defines the fee when you remove liquidity for the orderbooks
	TakerBps decimal.Decimal `json:"takerBps"`
}
