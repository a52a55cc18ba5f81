package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/thrasher-corp/execsim/backtester/funding"
	"github.com/thrasher-corp/execsim/common/file"
	"github.com/thrasher-corp/execsim/log"
)

// FileSystem stores the ledger snapshot as a JSON document
type FileSystem struct {
	path string
}

// NewFileSystem returns a file system store writing to path
func NewFileSystem(path string) *FileSystem {
	return &FileSystem{path: path}
}

// Save writes the snapshot to a temporary file and renames it into place
func (s *FileSystem) Save(_ context.Context, snap funding.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", " ")
	if err != nil {
		return err
	}
	if err := file.WriteAtomic(s.path, data); err != nil {
		return err
	}
	log.Debugf(log.Persistence, "ledger snapshot written to %s", s.path)
	return nil
}

// Load reads the snapshot from disk
func (s *FileSystem) Load(_ context.Context) (funding.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return funding.Snapshot{}, fmt.Errorf("%w: %s", ErrNoSnapshot, s.path)
		}
		return funding.Snapshot{}, err
	}
	var snap funding.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return funding.Snapshot{}, fmt.Errorf("could not decode %s: %w", s.path, err)
	}
	return snap, nil
}

// Close is a no-op for the file system store
func (s *FileSystem) Close() error {
	return nil
}
