package persistence

import (
	"fmt"
	"strings"

	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/database/repository/ledger"
	"github.com/thrasher-corp/execsim/log"
)

// Parse builds a store from a command argument of the form fs:<path>,
// leveldb:<path> or db. db is only needed for the db store.
func Parse(arg string, db database.IDatabase) (Store, error) {
	kind, path, _ := strings.Cut(arg, ":")
	switch strings.ToLower(kind) {
	case "fs":
		if path == "" {
			return nil, fmt.Errorf("%w: %s", errPathIsEmpty, arg)
		}
		return NewFileSystem(path), nil
	case "leveldb":
		if path == "" {
			return nil, fmt.Errorf("%w: %s", errPathIsEmpty, arg)
		}
		return NewLevelDB(path)
	case "db":
		if db == nil || !db.IsConnected() {
			return nil, errDatabaseRequired
		}
		repo, err := ledger.Setup(db)
		if err != nil {
			return nil, err
		}
		return NewDatabase(repo), nil
	case "":
		return nil, fmt.Errorf("%w: %q", errStoreArgInvalid, arg)
	default:
		log.Errorf(log.Persistence, "store type invalid: %s", kind)
		return nil, fmt.Errorf("%w: %s", errStoreTypeInvalid, kind)
	}
}
