package database

import (
	"database/sql"
	"errors"
	"sync"
)

// Supported database drivers
const (
	DBSQLite        = "sqlite"
	DBSQLite3       = "sqlite3"
	DBPostgreSQL    = "postgres"
	DBInvalidDriver = "invalid driver"
)

// MigrationDir is the default location of the goose migration files
const MigrationDir = "database/migrations"

var (
	// ErrNoDatabaseProvided is returned when no database name or file is set
	ErrNoDatabaseProvided = errors.New("no database provided")
	// ErrDatabaseNotConnected is returned when a query is attempted without a connection
	ErrDatabaseNotConnected = errors.New("database is not connected")
	// ErrUnsupportedDriver is returned for an unknown driver name
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	errNilInstance = errors.New("database instance is nil")
	errNilConfig   = errors.New("database config is nil")
	errNilSQL      = errors.New("database SQL connection is nil")
)

// Config holds all database configurable options including enable/disabled & DSN settings
type Config struct {
	Enabled  bool   `json:"enabled"`
	Verbose  bool   `json:"verbose"`
	Driver   string `json:"driver"`
	Host     string `json:"host,omitempty"`
	Port     uint16 `json:"port,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode,omitempty"`
}

// Instance holds a database connection and its config
type Instance struct {
	SQL       *sql.DB
	config    *Config
	connected bool
	m         sync.RWMutex
}

// IDatabase allows repositories to be set up without depending on Instance
type IDatabase interface {
	IsConnected() bool
	GetSQL() (*sql.DB, error)
	GetConfig() *Config
}
