package persistence

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/funding"
	"github.com/thrasher-corp/execsim/database/repository/ledger"
)

// Database stores the ledger snapshot through the ledger repository
type Database struct {
	repo *ledger.DB
}

// NewDatabase returns a store backed by the ledger repository
func NewDatabase(repo *ledger.DB) *Database {
	return &Database{repo: repo}
}

// Save replaces the stored ledger state
func (s *Database) Save(ctx context.Context, snap funding.Snapshot) error {
	state := &ledger.State{
		Cash:      snap.Cash,
		Positions: make([]ledger.Holding, 0, len(snap.Positions)),
	}
	for symbol, amount := range snap.Positions {
		state.Positions = append(state.Positions, ledger.Holding{Symbol: symbol, Amount: amount})
	}
	sort.Slice(state.Positions, func(i, j int) bool {
		return state.Positions[i].Symbol < state.Positions[j].Symbol
	})
	return s.repo.Replace(ctx, state)
}

// Load reads the stored ledger state
func (s *Database) Load(ctx context.Context) (funding.Snapshot, error) {
	state, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrNoState) {
			return funding.Snapshot{}, ErrNoSnapshot
		}
		return funding.Snapshot{}, err
	}
	snap := funding.Snapshot{
		Cash:      state.Cash,
		Positions: make(map[string]decimal.Decimal, len(state.Positions)),
	}
	for x := range state.Positions {
		snap.Positions[state.Positions[x].Symbol] = state.Positions[x].Amount
	}
	return snap, nil
}

// Close is a no-op, the connection is owned by the database instance
func (s *Database) Close() error {
	return nil
}
