package report

import (
	"errors"
	"time"

	"github.com/thrasher-corp/execsim/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
)

var (
	errNilStatistic  = errors.New("statistic is nil")
	errNoOutputPaths = errors.New("no export output paths supplied")
	errNoFillsArray  = errors.New("document has no fills array")
)

// History is the exported execution history document
type History struct {
	GeneratedAt time.Time          `json:"generated-at"`
	Summary     statistics.Summary `json:"summary"`
	Fills       []*fill.Fill       `json:"fills"`
}

// csvFill is the flat CSV form of a fill
type csvFill struct {
	ID            string `csv:"id"`
	Timestamp     string `csv:"timestamp"`
	Profile       string `csv:"profile"`
	Symbol        string `csv:"symbol"`
	Side          string `csv:"side"`
	OrderType     string `csv:"order_type"`
	Amount        string `csv:"amount"`
	ExpectedPrice string `csv:"expected_price"`
	FillPrice     string `csv:"fill_price"`
	Slippage      string `csv:"slippage"`
	SlippageBps   string `csv:"slippage_bps"`
	Fee           string `csv:"fee"`
	Notional      string `csv:"notional"`
	IsMaker       bool   `csv:"is_maker"`
}

// Exporter writes the execution log to JSON and CSV files at the end of a run
type Exporter struct {
	stats    *statistics.Statistic
	jsonPath string
	csvPath  string
	now      func() time.Time
}
