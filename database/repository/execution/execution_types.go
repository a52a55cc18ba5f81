package execution

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

var (
	errNilDatabase = errors.New("database is nil")
	errNilFill     = errors.New("fill is nil")
)

// DB reads and writes execution history
type DB struct {
	sql *sql.DB
}

// row mirrors the execution table. profile and slippage_bps are nullable as
// they may be absent from imported history.
type row struct {
	ID            string          `boil:"id"`
	ExecutedAt    time.Time       `boil:"executed_at"`
	Profile       null.String     `boil:"profile"`
	Symbol        string          `boil:"symbol"`
	Side          string          `boil:"side"`
	OrderType     string          `boil:"order_type"`
	Amount        decimal.Decimal `boil:"amount"`
	ExpectedPrice decimal.Decimal `boil:"expected_price"`
	FillPrice     decimal.Decimal `boil:"fill_price"`
	Slippage      decimal.Decimal `boil:"slippage"`
	SlippageBps   null.String     `boil:"slippage_bps"`
	Fee           decimal.Decimal `boil:"fee"`
	Notional      decimal.Decimal `boil:"notional"`
	IsMaker       bool            `boil:"is_maker"`
}
