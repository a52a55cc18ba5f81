package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/exchange/slippage"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/backtester/funding"
	"github.com/thrasher-corp/execsim/exchanges/fee"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"github.com/thrasher-corp/execsim/internal/order/limits"
	"github.com/thrasher-corp/execsim/log"
)

// Setup validates the settings and returns a ready exchange
func Setup(s *Settings) (*Exchange, error) {
	if s == nil {
		return nil, errNilSettings
	}
	if !s.Profile.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrProfileIsInvalid, s.Profile)
	}
	if s.Latency < 0 {
		return nil, fmt.Errorf("%w: %v", errNegativeLatency, s.Latency)
	}
	if s.Limits == nil {
		return nil, errNilLimits
	}
	if s.Slippage == nil {
		return nil, errNilSlippage
	}
	if s.Ledger == nil {
		return nil, errNilLedger
	}
	if s.Log == nil {
		return nil, errNilExecutionLog
	}
	if err := s.Fees.Validate(); err != nil {
		return nil, err
	}
	if s.Fees.IsInverted() {
		log.Warnf(log.Exchange, "maker fee %s bps exceeds taker fee %s bps", s.Fees.MakerBps, s.Fees.TakerBps)
	}
	if s.Fees.ExceedsThreshold() {
		log.Warnf(log.Exchange, "fee rates maker %s bps taker %s bps reach %s bps, check they are not percentages", s.Fees.MakerBps, s.Fees.TakerBps, fee.RateThresholdBps)
	}
	sink := s.Sink
	if sink == nil {
		sink = LogSink{}
	}
	return &Exchange{
		profile:       s.Profile,
		latency:       s.Latency,
		limits:        s.Limits,
		slippage:      s.Slippage,
		fees:          s.Fees,
		ledger:        s.Ledger,
		log:           s.Log,
		store:         s.Store,
		exporter:      s.Exporter,
		sink:          sink,
		saveAfterFill: s.SaveAfterFill,
		sleep:         time.Sleep,
		now:           time.Now,
		newID:         uuid.NewV4,
	}, nil
}

// ExecuteOrder quantizes, validates, prices and settles an order. Business
// failures are returned as a *fill.Rejection with a nil error. A non-nil
// error means the submission itself was malformed or a collaborator failed;
// when the execution log fails the settled *fill.Fill is still returned.
func (e *Exchange) ExecuteOrder(o order.Submit) (fill.Result, error) {
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidOrder, err)
	}

	lvl := e.limits.GetOrderExecutionLimits(o.Symbol)
	quantity := lvl.ConformToDecimalAmount(o.Amount)
	if !quantity.Equal(o.Amount) {
		log.Debugf(log.Exchange, "%s %s amount conformed from %s to %s", o.Side, o.Symbol, o.Amount, quantity)
	}
	if err := lvl.Conforms(quantity, o.Price); err != nil {
		reason, mapErr := reasonFromLimits(err)
		if mapErr != nil {
			return nil, mapErr
		}
		return e.reject(&o, quantity, reason, err.Error()), nil
	}
	if !quantity.IsPositive() {
		// only reachable with a zero minimum notional
		return e.reject(&o, quantity, fill.LotSizeViolation, "amount is below lot size"), nil
	}

	if e.profile == SimulatedLatency && e.latency > 0 {
		e.sleep(e.latency)
	}

	slip := e.slippage.Calculate(o.Price, quantity, o.Volume24h, o.SpreadPct)
	fillPrice := slippage.ApplyToPrice(o.Price, slip, quantity, o.Side == order.Buy)
	notional := quantity.Mul(fillPrice)
	isMaker := o.Type.IsMaker()
	commission := e.fees.Calculate(notional, isMaker)

	id, err := e.newID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFillID, err)
	}

	err = e.ledger.Apply(funding.Transaction{
		Symbol:   o.Symbol,
		Side:     o.Side,
		Amount:   quantity,
		Notional: notional,
		Fee:      commission,
	})
	if err != nil {
		switch {
		case errors.Is(err, funding.ErrInsufficientCash):
			return e.reject(&o, quantity, fill.InsufficientCash, err.Error()), nil
		case errors.Is(err, funding.ErrInsufficientPosition):
			return e.reject(&o, quantity, fill.InsufficientPosition, err.Error()), nil
		default:
			return nil, err
		}
	}

	f := &fill.Fill{
		ID:            id,
		Timestamp:     e.now(),
		Profile:       e.profile.String(),
		Symbol:        o.Symbol,
		Side:          o.Side,
		Type:          o.Type,
		Amount:        quantity,
		ExpectedPrice: o.Price,
		FillPrice:     fillPrice,
		Slippage:      slip,
		SlippageBps:   slippage.BasisPoints(o.Price, fillPrice),
		Fee:           commission,
		Notional:      notional,
		IsMaker:       isMaker,
		Success:       true,
	}
	e.sink.Filled(f)

	if e.saveAfterFill && e.store != nil {
		if err := e.SaveState(context.Background()); err != nil {
			e.sink.Fault("save state", err)
		}
	}
	if err := e.log.Append(f); err != nil {
		e.sink.Fault("append fill", err)
		return f, fmt.Errorf("%w: %w", errAppendFill, err)
	}
	return f, nil
}

func (e *Exchange) reject(o *order.Submit, quantity decimal.Decimal, reason fill.Reason, detail string) *fill.Rejection {
	r := &fill.Rejection{
		Timestamp: e.now(),
		Symbol:    o.Symbol,
		Side:      o.Side,
		Amount:    quantity,
		Price:     o.Price,
		Reason:    reason,
		Detail:    detail,
	}
	if rec, ok := e.log.(RejectionRecorder); ok {
		rec.AppendRejection(r)
	}
	e.sink.Rejected(r)
	return r
}

func reasonFromLimits(err error) (fill.Reason, error) {
	switch {
	case errors.Is(err, limits.ErrNotionalValue):
		return fill.BelowMinNotional, nil
	case errors.Is(err, limits.ErrAmountExceedsStep):
		return fill.LotSizeViolation, nil
	default:
		return fill.UnknownReason, fmt.Errorf("%w: %w", errUnmappedReason, err)
	}
}

// Snapshot returns a copy of the ledger
func (e *Exchange) Snapshot() funding.Snapshot {
	return e.ledger.Snapshot()
}

// SaveState writes a ledger snapshot to the configured store
func (e *Exchange) SaveState(ctx context.Context) error {
	if e.store == nil {
		return errNoStateStore
	}
	e.storeMtx.Lock()
	defer e.storeMtx.Unlock()
	if err := e.store.Save(ctx, e.ledger.Snapshot()); err != nil {
		return fmt.Errorf("could not save ledger state: %w", err)
	}
	return nil
}

// LoadState restores the ledger from the configured store. On any failure
// the in-memory ledger is left unchanged.
func (e *Exchange) LoadState(ctx context.Context) error {
	if e.store == nil {
		return errNoStateStore
	}
	e.storeMtx.Lock()
	defer e.storeMtx.Unlock()
	s, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("could not load ledger state: %w", err)
	}
	if err := e.ledger.Restore(s); err != nil {
		return fmt.Errorf("could not load ledger state: %w", err)
	}
	log.Infof(log.Exchange, "ledger restored: cash %s, %d positions", s.Cash, len(s.Positions))
	return nil
}

// Finalize saves the ledger and exports execution history for whichever of
// the two are configured
func (e *Exchange) Finalize(ctx context.Context) error {
	var errs error
	if e.store != nil {
		if err := e.SaveState(ctx); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if e.exporter != nil {
		if err := e.exporter.Export(ctx); err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not export execution history: %w", err))
		}
	}
	return errs
}

// IsValid returns whether the profile is a known value
func (p Profile) IsValid() bool {
	switch p {
	case SimulatedLatency, PassthroughLatency:
		return true
	case UnknownProfile:
		return false
	default:
		return false
	}
}

// String implements fmt.Stringer
func (p Profile) String() string {
	switch p {
	case SimulatedLatency:
		return "simulated"
	case PassthroughLatency:
		return "passthrough"
	case UnknownProfile:
		return "unknown"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseProfile converts a config string to a Profile
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simulated", "simulated_latency":
		return SimulatedLatency, nil
	case "passthrough", "passthrough_latency":
		return PassthroughLatency, nil
	default:
		return UnknownProfile, fmt.Errorf("%w: %q", ErrProfileIsInvalid, s)
	}
}
