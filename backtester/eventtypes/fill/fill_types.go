package fill

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/exchanges/order"
)

// Reason is the closed set of causes for a rejected order
type Reason uint8

// Rejection reasons
const (
	UnknownReason Reason = iota
	BelowMinNotional
	LotSizeViolation
	InsufficientCash
	InsufficientPosition
)

// ErrReasonIsInvalid is returned when decoding an unrecognised reason
var ErrReasonIsInvalid = errors.New("rejection reason is invalid")

// Result is either a *Fill or a *Rejection, never both
type Result interface {
	IsFilled() bool
	GetSymbol() string
	GetSide() order.Side
	GetAmount() decimal.Decimal
	isResult()
}

// Fill details a successfully simulated execution. Once created it is not
// modified.
type Fill struct {
	ID            uuid.UUID       `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Profile       string          `json:"profile"`
	Symbol        string          `json:"symbol"`
	Side          order.Side      `json:"side"`
	Type          order.Type      `json:"order-type"`
	Amount        decimal.Decimal `json:"amount"`
	ExpectedPrice decimal.Decimal `json:"expected-price"`
	FillPrice     decimal.Decimal `json:"fill-price"`
	Slippage      decimal.Decimal `json:"slippage"`
	SlippageBps   decimal.Decimal `json:"slippage-bps"`
	Fee           decimal.Decimal `json:"fee"`
	Notional      decimal.Decimal `json:"notional"`
	IsMaker       bool            `json:"is-maker"`
	Success       bool            `json:"success"`
}

// Rejection echoes an order that could not be executed and why. It carries no
// ledger effect.
type Rejection struct {
	Timestamp time.Time       `json:"timestamp"`
	Symbol    string          `json:"symbol"`
	Side      order.Side      `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Reason    Reason          `json:"reason"`
	Detail    string          `json:"detail,omitempty"`
}
