package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/buger/jsonparser"
	"github.com/gocarina/gocsv"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/common/file"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"github.com/thrasher-corp/execsim/log"
)

// NewExporter returns an exporter for the statistic. Either path may be empty
// but not both.
func NewExporter(s *statistics.Statistic, jsonPath, csvPath string) (*Exporter, error) {
	if s == nil {
		return nil, errNilStatistic
	}
	if jsonPath == "" && csvPath == "" {
		return nil, errNoOutputPaths
	}
	return &Exporter{
		stats:    s,
		jsonPath: jsonPath,
		csvPath:  csvPath,
		now:      time.Now,
	}, nil
}

// Export writes every configured output
func (e *Exporter) Export(_ context.Context) error {
	fills := e.stats.Fills()
	if e.jsonPath != "" {
		f, err := file.Writer(e.jsonPath)
		if err != nil {
			return err
		}
		err = WriteJSON(f, &History{
			GeneratedAt: e.now(),
			Summary:     e.stats.Statistics(),
			Fills:       fills,
		})
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("could not write %s: %w", e.jsonPath, err)
		}
		log.Infof(log.Statistics, "execution history written to %s", e.jsonPath)
	}
	if e.csvPath != "" {
		f, err := file.Writer(e.csvPath)
		if err != nil {
			return err
		}
		err = WriteCSV(f, fills)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("could not write %s: %w", e.csvPath, err)
		}
		log.Infof(log.Statistics, "execution history written to %s", e.csvPath)
	}
	return nil
}

// WriteJSON writes the history document as indented JSON
func WriteJSON(w io.Writer, h *History) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(h)
}

// WriteCSV writes fills as CSV with a header row
func WriteCSV(w io.Writer, fills []*fill.Fill) error {
	rows := make([]*csvFill, len(fills))
	for i, f := range fills {
		rows[i] = &csvFill{
			ID:            f.ID.String(),
			Timestamp:     f.Timestamp.UTC().Format(time.RFC3339Nano),
			Profile:       f.Profile,
			Symbol:        f.Symbol,
			Side:          f.Side.String(),
			OrderType:     f.Type.String(),
			Amount:        f.Amount.String(),
			ExpectedPrice: f.ExpectedPrice.String(),
			FillPrice:     f.FillPrice.String(),
			Slippage:      f.Slippage.String(),
			SlippageBps:   f.SlippageBps.String(),
			Fee:           f.Fee.String(),
			Notional:      f.Notional.String(),
			IsMaker:       f.IsMaker,
		}
	}
	return gocsv.Marshal(&rows, w)
}

// ReadCSV reads fills written by WriteCSV
func ReadCSV(r io.Reader) ([]*fill.Fill, error) {
	var rows []*csvFill
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	resp := make([]*fill.Fill, 0, len(rows))
	for x := range rows {
		f, err := rows[x].toFill()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", x+1, err)
		}
		resp = append(resp, f)
	}
	return resp, nil
}

func (c *csvFill) toFill() (*fill.Fill, error) {
	p := &fieldParser{}
	f := &fill.Fill{
		ID:            p.uuid(c.ID),
		Timestamp:     p.time(c.Timestamp),
		Profile:       c.Profile,
		Symbol:        c.Symbol,
		Side:          p.side(c.Side),
		Type:          p.orderType(c.OrderType),
		Amount:        p.decimal("amount", c.Amount),
		ExpectedPrice: p.decimal("expected_price", c.ExpectedPrice),
		FillPrice:     p.decimal("fill_price", c.FillPrice),
		Slippage:      p.decimal("slippage", c.Slippage),
		SlippageBps:   p.decimal("slippage_bps", c.SlippageBps),
		Fee:           p.decimal("fee", c.Fee),
		Notional:      p.decimal("notional", c.Notional),
		IsMaker:       c.IsMaker,
		Success:       true,
	}
	return f, p.err
}

// ImportJSON reads the fills array of a document written by WriteJSON. Only
// the fields of each fill are parsed, the summary is recalculated by the
// caller.
func ImportJSON(data []byte) ([]*fill.Fill, error) {
	if _, dataType, _, err := jsonparser.Get(data, "fills"); err != nil || dataType != jsonparser.Array {
		if err == nil || errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return nil, errNoFillsArray
		}
		return nil, err
	}
	var fills []*fill.Fill
	var parseErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		f, err := parseFill(value)
		if err != nil {
			parseErr = fmt.Errorf("fill %d: %w", len(fills)+1, err)
			return
		}
		fills = append(fills, f)
	}, "fills")
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return fills, nil
}

func parseFill(value []byte) (*fill.Fill, error) {
	p := &fieldParser{}
	getString := func(key string) string {
		if p.err != nil {
			return ""
		}
		s, err := jsonparser.GetString(value, key)
		if err != nil {
			p.err = fmt.Errorf("%s: %w", key, err)
		}
		return s
	}
	f := &fill.Fill{
		ID:            p.uuid(getString("id")),
		Timestamp:     p.time(getString("timestamp")),
		Symbol:        getString("symbol"),
		Side:          p.side(getString("side")),
		Type:          p.orderType(getString("order-type")),
		Amount:        p.decimal("amount", getString("amount")),
		ExpectedPrice: p.decimal("expected-price", getString("expected-price")),
		FillPrice:     p.decimal("fill-price", getString("fill-price")),
		Slippage:      p.decimal("slippage", getString("slippage")),
		Fee:           p.decimal("fee", getString("fee")),
		Notional:      p.decimal("notional", getString("notional")),
		Success:       true,
	}
	if p.err != nil {
		return nil, p.err
	}
	// optional fields
	if profile, err := jsonparser.GetString(value, "profile"); err == nil {
		f.Profile = profile
	}
	if bps, err := jsonparser.GetString(value, "slippage-bps"); err == nil {
		f.SlippageBps = p.decimal("slippage-bps", bps)
	}
	if maker, err := jsonparser.GetBoolean(value, "is-maker"); err == nil {
		f.IsMaker = maker
	}
	return f, p.err
}

// fieldParser records the first conversion error so a record can be decoded
// in a single expression
type fieldParser struct {
	err error
}

func (p *fieldParser) decimal(field, s string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", field, err)
	}
	return d
}

func (p *fieldParser) uuid(s string) uuid.UUID {
	if p.err != nil {
		return uuid.Nil
	}
	id, err := uuid.FromString(s)
	if err != nil {
		p.err = fmt.Errorf("id: %w", err)
	}
	return id
}

func (p *fieldParser) time(s string) time.Time {
	if p.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		p.err = fmt.Errorf("timestamp: %w", err)
	}
	return t
}

func (p *fieldParser) side(s string) order.Side {
	if p.err != nil {
		return order.UnknownSide
	}
	side, err := order.StringToOrderSide(s)
	if err != nil {
		p.err = err
	}
	return side
}

func (p *fieldParser) orderType(s string) order.Type {
	if p.err != nil {
		return order.UnknownType
	}
	t, err := order.StringToOrderType(s)
	if err != nil {
		p.err = err
	}
	return t
}
