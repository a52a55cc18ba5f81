package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/common/file"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"github.com/thrasher-corp/execsim/log"
	"golang.org/x/time/rate"
)

// LoadOrdersFromFile reads a CSV order batch from disk
func LoadOrdersFromFile(path string) ([]order.Submit, error) {
	if !file.Exists(path) {
		return nil, fmt.Errorf("%w: %s", errOrderFileNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadOrders(f)
}

// LoadOrders decodes a CSV order batch with a header of
// symbol,side,type,amount,price,volume_24h,spread_pct
func LoadOrders(r io.Reader) ([]order.Submit, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("could not decode orders: %w", err)
	}
	if len(rows) == 0 {
		return nil, errNoOrders
	}
	orders := make([]order.Submit, len(rows))
	for x := range rows {
		s, err := rows[x].toSubmit()
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("%w at line %d: %w", errInvalidRow, x+2, err)
		}
		orders[x] = *s
	}
	return orders, nil
}

func (r *Row) toSubmit() (*order.Submit, error) {
	side, err := order.StringToOrderSide(r.Side)
	if err != nil {
		return nil, err
	}
	oType := order.Market
	if r.Type != "" {
		if oType, err = order.StringToOrderType(r.Type); err != nil {
			return nil, err
		}
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	s := order.NewMarketSubmit(r.Symbol, side, amount, price)
	s.Type = oType
	if r.Volume24h != "" {
		if s.Volume24h, err = decimal.NewFromString(r.Volume24h); err != nil {
			return nil, fmt.Errorf("volume_24h: %w", err)
		}
	}
	if r.SpreadPct != "" {
		if s.SpreadPct, err = decimal.NewFromString(r.SpreadPct); err != nil {
			return nil, fmt.Errorf("spread_pct: %w", err)
		}
	}
	return s, nil
}

// NewRunner returns a runner limited to ordersPerSecond submissions. Zero
// disables the limit.
func NewRunner(exec Executor, ordersPerSecond float64, burst int) (*Runner, error) {
	if exec == nil {
		return nil, errNilExecutor
	}
	if ordersPerSecond < 0 || math.IsNaN(ordersPerSecond) {
		return nil, fmt.Errorf("%w: %v", errInvalidRate, ordersPerSecond)
	}
	if burst < 1 {
		return nil, fmt.Errorf("%w: %d", errInvalidBurst, burst)
	}
	limit := rate.Inf
	if ordersPerSecond > 0 {
		limit = rate.Limit(ordersPerSecond)
	}
	return &Runner{
		exec:    exec,
		limiter: rate.NewLimiter(limit, burst),
	}, nil
}

// Run submits orders sequentially. Rejections and per order faults do not
// stop the batch; cancelling ctx does, returning the partial outcome.
func (r *Runner) Run(ctx context.Context, orders []order.Submit) (*Outcome, error) {
	if len(orders) == 0 {
		return nil, errNoOrders
	}
	out := &Outcome{Results: make([]fill.Result, 0, len(orders))}
	for x := range orders {
		if err := r.limiter.Wait(ctx); err != nil {
			log.Warnf(log.Replay, "Replay stopped after %d of %d orders: %v", x, len(orders), err)
			return out, err
		}
		res, err := r.exec.ExecuteOrder(orders[x])
		if err != nil {
			out.Faults = append(out.Faults, Fault{Index: x, Err: err})
			log.Errorf(log.Replay, "Order %d %s %s: %v", x, orders[x].Side, orders[x].Symbol, err)
		}
		if res == nil {
			continue
		}
		out.Results = append(out.Results, res)
		if res.IsFilled() {
			out.Filled++
		} else {
			out.Rejected++
		}
	}
	log.Infof(log.Replay, "Replay complete: %d orders, %d filled, %d rejected, %d faults", len(orders), out.Filled, out.Rejected, len(out.Faults))
	return out, nil
}

// Err joins all faults raised during the batch
func (o *Outcome) Err() error {
	if o == nil || len(o.Faults) == 0 {
		return nil
	}
	errs := make([]error, len(o.Faults))
	for x := range o.Faults {
		errs[x] = fmt.Errorf("order %d: %w", o.Faults[x].Index, o.Faults[x].Err)
	}
	return errors.Join(errs...)
}
