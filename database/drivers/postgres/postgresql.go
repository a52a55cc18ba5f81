package postgres

import (
	"database/sql"
	"fmt"

	// import postgres driver
	_ "github.com/lib/pq"
	"github.com/thrasher-corp/execsim/database"
)

// Connect opens a connection pool to a postgres database and returns a
// connected database.Instance
func Connect(cfg *database.Config) (*database.Instance, error) {
	if cfg == nil || cfg.Database == "" {
		return nil, database.ErrNoDatabaseProvided
	}
	dbConn, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}
	inst := &database.Instance{}
	if err = inst.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err = inst.SetPostgresConnection(dbConn); err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	inst.SetConnected(true)
	return inst, nil
}

// DSN builds a lib/pq connection string from the config
func DSN(cfg *database.Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		sslMode)
}
