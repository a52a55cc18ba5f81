package sqlite

import (
	"database/sql"

	// import sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/thrasher-corp/execsim/database"
)

// Connect opens a connection to a sqlite database file and returns a
// connected database.Instance
func Connect(cfg *database.Config) (*database.Instance, error) {
	if cfg == nil || cfg.Database == "" {
		return nil, database.ErrNoDatabaseProvided
	}
	dbConn, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return nil, err
	}
	inst := &database.Instance{}
	if err = inst.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err = inst.SetSQLiteConnection(dbConn); err != nil {
		return nil, err
	}
	inst.SetConnected(true)
	return inst, nil
}
