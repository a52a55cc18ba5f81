package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/sqlboiler/boil"
)

func newSQLiteInstance(t *testing.T) *Instance {
	t.Helper()
	con, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "execsim.db"))
	require.NoError(t, err)
	i := &Instance{}
	require.NoError(t, i.SetConfig(&Config{Enabled: true, Driver: DBSQLite3, Database: "execsim.db"}))
	require.NoError(t, i.SetSQLiteConnection(con))
	i.SetConnected(true)
	t.Cleanup(func() { _ = i.CloseConnection() })
	return i
}

func TestInstanceNil(t *testing.T) {
	t.Parallel()
	var i *Instance
	assert.ErrorIs(t, i.SetConfig(&Config{}), errNilInstance)
	assert.ErrorIs(t, i.Ping(), errNilInstance)
	assert.ErrorIs(t, i.CloseConnection(), errNilInstance)
	assert.False(t, i.IsConnected())
	assert.Nil(t, i.GetConfig())
	_, err := i.GetSQL()
	assert.ErrorIs(t, err, errNilInstance)

	i = &Instance{}
	assert.ErrorIs(t, i.SetConfig(nil), errNilConfig)
	assert.ErrorIs(t, i.Ping(), errNilSQL)
	assert.ErrorIs(t, i.SetSQLiteConnection(nil), errNilSQL)
	_, err = i.GetSQL()
	assert.ErrorIs(t, err, ErrDatabaseNotConnected)
}

func TestSetConfigVerbose(t *testing.T) {
	i := &Instance{}
	require.NoError(t, i.SetConfig(&Config{Verbose: true}))
	assert.True(t, boil.DebugMode)
	assert.IsType(t, Logger{}, boil.DebugWriter)
	require.NoError(t, i.SetConfig(&Config{}))
	assert.False(t, boil.DebugMode)
}

func TestGetConfigCopy(t *testing.T) {
	i := &Instance{}
	require.NoError(t, i.SetConfig(&Config{Driver: DBSQLite3}))
	cfg := i.GetConfig()
	cfg.Driver = DBPostgreSQL
	assert.Equal(t, DBSQLite3, i.GetConfig().Driver)
}

func TestDialect(t *testing.T) {
	t.Parallel()
	for driver, want := range map[string]string{
		"sqlite":     DBSQLite3,
		"SQLite3":    DBSQLite3,
		"postgres":   DBPostgreSQL,
		"postgresql": DBPostgreSQL,
		"mysql":      DBInvalidDriver,
	} {
		assert.Equal(t, want, Dialect(driver), driver)
	}
}

// SetConfig toggles boil globals so the tests calling it run serially

func TestMigrate(t *testing.T) {
	i := newSQLiteInstance(t)
	require.NoError(t, i.Ping())
	require.NoError(t, i.Migrate("up", "migrations", ""))

	db, err := i.GetSQL()
	require.NoError(t, err)
	for _, table := range []string{"ledger_cash", "ledger_position", "execution"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=$1", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	require.NoError(t, i.Migrate("down", "migrations", ""))
	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='execution'").Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, i.SetConfig(&Config{Driver: "mysql"}))
	assert.ErrorIs(t, i.Migrate("up", "migrations", ""), ErrUnsupportedDriver)
}

func TestLoggerWrite(t *testing.T) {
	t.Parallel()
	n, err := Logger{}.Write([]byte("SELECT 1"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}
