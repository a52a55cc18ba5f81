package limits

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NewManager returns a limits manager that falls back to the supplied level
// when no symbol specific level has been loaded
func NewManager(fallback Level) (*Manager, error) {
	if err := fallback.Validate(); err != nil {
		return nil, err
	}
	fallback.LastUpdated = time.Now()
	return &Manager{
		fallback: fallback,
		levels:   make(map[string]*Level),
	}, nil
}

// LoadLimits loads all limits levels into memory
func (m *Manager) LoadLimits(levels []Level) error {
	if len(levels) == 0 {
		return errCannotLoadLimit
	}
	for x := range levels {
		if levels[x].Symbol == "" {
			return ErrSymbolIsEmpty
		}
		if err := levels[x].Validate(); err != nil {
			return fmt.Errorf("cannot load levels for %q: %w", levels[x].Symbol, err)
		}
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for x := range levels {
		lvl := levels[x]
		lvl.LastUpdated = time.Now()
		m.levels[strings.ToUpper(lvl.Symbol)] = &lvl
	}
	return nil
}

// GetOrderExecutionLimits returns the limit parameters for a symbol, or the
// default level when none were loaded for it
func (m *Manager) GetOrderExecutionLimits(symbol string) Level {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	if lvl, ok := m.levels[strings.ToUpper(symbol)]; ok {
		return *lvl
	}
	lvl := m.fallback
	lvl.Symbol = symbol
	return lvl
}

// Validate ensures no negative bounds are set on the level
func (l *Level) Validate() error {
	if l.MinNotional.IsNegative() {
		return fmt.Errorf("%w: minimum notional %v", ErrInvalidLevel, l.MinNotional)
	}
	if l.AmountStepIncrementSize.IsNegative() {
		return fmt.Errorf("%w: lot size %v", ErrInvalidLevel, l.AmountStepIncrementSize)
	}
	if l.PricePrecision < 0 {
		return fmt.Errorf("%w: price precision %d", ErrInvalidLevel, l.PricePrecision)
	}
	return nil
}

// ConformToDecimalAmount floors amount to the nearest multiple of the lot
// size. The result is always an exact multiple and never exceeds amount.
func (l *Level) ConformToDecimalAmount(amount decimal.Decimal) decimal.Decimal {
	if l == nil {
		return amount
	}
	if l.AmountStepIncrementSize.IsZero() || amount.Equal(l.AmountStepIncrementSize) {
		return amount
	}
	if amount.LessThan(l.AmountStepIncrementSize) {
		return decimal.Zero
	}
	mod := amount.Mod(l.AmountStepIncrementSize)
	// subtract modulus to get the floor
	return amount.Sub(mod)
}

// Conforms checks an amount and reference price against the level. It may be
// called on an amount that has not been conformed to the lot size first.
func (l *Level) Conforms(amount, price decimal.Decimal) error {
	if l == nil {
		return nil
	}
	notional := amount.Mul(price)
	if notional.LessThan(l.MinNotional) {
		return fmt.Errorf("%w minimum notional: %s value of order %s",
			ErrNotionalValue,
			l.MinNotional,
			notional)
	}
	if !l.AmountStepIncrementSize.IsZero() &&
		!amount.Mod(l.AmountStepIncrementSize).IsZero() {
		return fmt.Errorf("%w stepSize: %s supplied %s",
			ErrAmountExceedsStep,
			l.AmountStepIncrementSize,
			amount)
	}
	return nil
}
