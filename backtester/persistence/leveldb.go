package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/thrasher-corp/execsim/backtester/funding"
	"github.com/thrasher-corp/execsim/log"
)

// snapshot key: ledger:snapshot	value: JSON encoded funding.Snapshot
var snapshotKey = []byte("ledger:snapshot")

// LevelDB stores the ledger snapshot in a level db database
type LevelDB struct {
	db *leveldb.DB
}

// NewLevelDB opens or creates a level db database at root
func NewLevelDB(root string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(root, nil)
	if err != nil {
		log.Errorf(log.Persistence, "open db %s failed: %v", root, err)
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// Close closes the level db store
func (s *LevelDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes the snapshot within a transaction
func (s *LevelDB) Save(_ context.Context, snap funding.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	trans, err := s.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("open db transaction failed: %w", err)
	}
	defer trans.Discard()

	batch := new(leveldb.Batch)
	batch.Put(snapshotKey, data)
	if err = trans.Write(batch, nil); err != nil {
		return fmt.Errorf("batch save failed: %w", err)
	}
	return trans.Commit()
}

// Load reads the snapshot
func (s *LevelDB) Load(_ context.Context) (funding.Snapshot, error) {
	data, err := s.db.Get(snapshotKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return funding.Snapshot{}, ErrNoSnapshot
		}
		return funding.Snapshot{}, err
	}
	var snap funding.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return funding.Snapshot{}, fmt.Errorf("could not decode snapshot: %w", err)
	}
	return snap, nil
}
