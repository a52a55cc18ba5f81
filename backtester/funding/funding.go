package funding

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/exchanges/order"
)

// SetupLedger creates a ledger with initial cash and no positions
func SetupLedger(initialCash decimal.Decimal) (*Ledger, error) {
	if initialCash.IsNegative() {
		return nil, fmt.Errorf("%w: %v", errNegativeFunds, initialCash)
	}
	return &Ledger{
		cash:      initialCash,
		positions: make(map[string]decimal.Decimal),
	}, nil
}

// Apply checks and settles a transaction as a single critical section.
// Buys debit notional plus fee from cash and credit the position. Sells debit
// the position and credit notional less fee to cash; slippage beyond the
// price leaves a sell with negative proceeds, which cash must cover. On error
// nothing changes.
func (l *Ledger) Apply(t Transaction) error {
	if l == nil {
		return errNilLedger
	}
	if t.Symbol == "" {
		return errSymbolIsEmpty
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: %v", errInvalidAmount, t.Amount)
	}
	if t.Side == order.Buy && (t.Notional.IsNegative() || t.Fee.IsNegative()) {
		return fmt.Errorf("%w: notional %v fee %v", errNegativeValue, t.Notional, t.Fee)
	}

	l.m.Lock()
	defer l.m.Unlock()
	held := l.positions[t.Symbol]
	switch t.Side {
	case order.Buy:
		totalCost := t.Notional.Add(t.Fee)
		if totalCost.GreaterThan(l.cash) {
			return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, totalCost, l.cash)
		}
		l.cash = l.cash.Sub(totalCost)
		l.positions[t.Symbol] = held.Add(t.Amount)
	case order.Sell:
		if t.Amount.GreaterThan(held) {
			return fmt.Errorf("%w: need %s, have %s", ErrInsufficientPosition, t.Amount, held)
		}
		proceeds := t.Notional.Sub(t.Fee)
		if proceeds.IsNegative() && proceeds.Abs().GreaterThan(l.cash) {
			return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, proceeds.Abs(), l.cash)
		}
		l.cash = l.cash.Add(proceeds)
		l.positions[t.Symbol] = held.Sub(t.Amount)
	default:
		return fmt.Errorf("%w for %s: %w %v", errCannotAllocate, t.Symbol, order.ErrSideIsInvalid, t.Side)
	}
	return nil
}

// Cash returns the current cash balance
func (l *Ledger) Cash() decimal.Decimal {
	l.m.Lock()
	defer l.m.Unlock()
	return l.cash
}

// Position returns the amount held for symbol, zero if none
func (l *Ledger) Position(symbol string) decimal.Decimal {
	l.m.Lock()
	defer l.m.Unlock()
	return l.positions[symbol]
}

// Snapshot returns a copy of the ledger that is safe to share
func (l *Ledger) Snapshot() Snapshot {
	l.m.Lock()
	defer l.m.Unlock()
	positions := make(map[string]decimal.Decimal, len(l.positions))
	for k, v := range l.positions {
		positions[k] = v
	}
	return Snapshot{
		Cash:      l.cash,
		Positions: positions,
	}
}

// Restore replaces the ledger contents with the snapshot. The snapshot is
// validated in full before anything is replaced.
func (l *Ledger) Restore(s Snapshot) error {
	if l == nil {
		return errNilLedger
	}
	if err := s.Validate(); err != nil {
		return err
	}
	positions := make(map[string]decimal.Decimal, len(s.Positions))
	for k, v := range s.Positions {
		positions[k] = v
	}
	l.m.Lock()
	l.cash = s.Cash
	l.positions = positions
	l.m.Unlock()
	return nil
}

// Validate checks a snapshot against the ledger invariants
func (s *Snapshot) Validate() error {
	if s.Cash.IsNegative() {
		return fmt.Errorf("%w: negative cash %s", ErrInvalidSnapshot, s.Cash)
	}
	for symbol, amount := range s.Positions {
		if symbol == "" {
			return fmt.Errorf("%w: empty symbol", ErrInvalidSnapshot)
		}
		if amount.IsNegative() {
			return fmt.Errorf("%w: negative position %s for %s", ErrInvalidSnapshot, amount, symbol)
		}
	}
	return nil
}

// Equal returns whether two snapshots hold identical cash and positions
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	if !s.Cash.Equal(other.Cash) || len(s.Positions) != len(other.Positions) {
		return false
	}
	for k, v := range s.Positions {
		o, ok := other.Positions[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}
