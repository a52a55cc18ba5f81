package persistence

import (
	"context"
	"errors"

	"github.com/thrasher-corp/execsim/backtester/funding"
)

var (
	// ErrNoSnapshot is returned by Load when nothing has been saved yet
	ErrNoSnapshot = errors.New("no ledger snapshot saved")

	errStoreArgInvalid  = errors.New("store arg invalid")
	errStoreTypeInvalid = errors.New("store type invalid")
	errDatabaseRequired = errors.New("database store requires a connected database")
	errPathIsEmpty      = errors.New("store path is empty")
)

// Store saves and loads ledger snapshots. Last write wins.
type Store interface {
	Save(context.Context, funding.Snapshot) error
	Load(context.Context) (funding.Snapshot, error)
	Close() error
}
