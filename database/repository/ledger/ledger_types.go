package ledger

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoState is returned when no ledger state has been stored yet
var ErrNoState = errors.New("no ledger state stored")

var (
	errNilDatabase = errors.New("database is nil")
	errNilState    = errors.New("ledger state is nil")
)

// State is the persisted form of a ledger
type State struct {
	Cash      decimal.Decimal
	Positions []Holding
	UpdatedAt time.Time
}

// Holding is a single position row
type Holding struct {
	Symbol string          `boil:"symbol"`
	Amount decimal.Decimal `boil:"amount"`
}

type cashRow struct {
	Cash      decimal.Decimal `boil:"cash"`
	UpdatedAt time.Time       `boil:"updated_at"`
}

// DB reads and writes ledger state
type DB struct {
	sql *sql.DB
}
