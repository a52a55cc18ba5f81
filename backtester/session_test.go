package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/execsim/backtester/config"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/exchanges/order"
	testutils "github.com/thrasher-corp/execsim/internal/testing/utils"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := config.GenerateDefault()
	c.Execution.Profile = "passthrough"
	c.Persistence.Store = "fs:" + filepath.Join(t.TempDir(), "ledger.json")
	c.Persistence.LoadOnStart = true
	return c
}

func TestNewSessionNilConfig(t *testing.T) {
	t.Parallel()
	_, err := newSession(context.Background(), nil, "")
	assert.ErrorIs(t, err, errNilConfig)
}

func TestSessionPersistsLedger(t *testing.T) {
	t.Parallel()
	c := testConfig(t)
	ctx := context.Background()

	sess, err := newSession(ctx, c, "")
	require.NoError(t, err)
	assert.True(t, sess.exchange.Snapshot().Cash.Equal(c.Funding.InitialCash), "missing snapshot starts from initial cash")

	res, err := sess.exchange.ExecuteOrder(*order.NewMarketSubmit("BTC-USD", order.Buy, decimal.RequireFromString("0.1"), decimal.NewFromInt(50000)))
	require.NoError(t, err)
	require.True(t, res.IsFilled())
	require.NoError(t, sess.exchange.Finalize(ctx))
	want := sess.exchange.Snapshot()
	sess.close()

	sess, err = newSession(ctx, c, "")
	require.NoError(t, err)
	defer sess.close()
	got := sess.exchange.Snapshot()
	assert.True(t, want.Equal(&got))
	assert.True(t, got.Positions["BTC-USD"].Equal(decimal.RequireFromString("0.1")))
}

func TestSessionLoadStateWithoutStore(t *testing.T) {
	t.Parallel()
	c := config.GenerateDefault()
	c.Execution.Profile = "passthrough"
	sess, err := newSession(context.Background(), c, "")
	require.NoError(t, err)
	defer sess.close()
	assert.ErrorIs(t, sess.loadState(context.Background()), errNoStateStore)
}

func TestSessionExports(t *testing.T) {
	t.Parallel()
	c := testConfig(t)
	dir := t.TempDir()
	c.Output.JSONPath = filepath.Join(dir, "history.json")
	c.Output.CSVPath = filepath.Join(dir, "history.csv")

	sess, err := newSession(context.Background(), c, "")
	require.NoError(t, err)
	defer sess.close()
	_, err = sess.exchange.ExecuteOrder(*order.NewMarketSubmit("BTC-USD", order.Buy, decimal.RequireFromString("0.1"), decimal.NewFromInt(50000)))
	require.NoError(t, err)
	require.NoError(t, sess.exchange.Finalize(context.Background()))
	assert.FileExists(t, c.Output.JSONPath)
	assert.FileExists(t, c.Output.CSVPath)
}

func TestSessionWithDatabase(t *testing.T) {
	c := config.GenerateDefault()
	c.Execution.Profile = "passthrough"
	c.Database = database.Config{
		Enabled:  true,
		Driver:   database.DBSQLite3,
		Database: filepath.Join(t.TempDir(), "execsim.db"),
	}
	c.Persistence.Store = "db"
	c.Persistence.LoadOnStart = true
	migrations, err := testutils.MigrationDirFromCWD()
	require.NoError(t, err)
	ctx := context.Background()

	sess, err := newSession(ctx, c, migrations)
	require.NoError(t, err)
	res, err := sess.exchange.ExecuteOrder(*order.NewMarketSubmit("BTC-USD", order.Buy, decimal.RequireFromString("0.1"), decimal.NewFromInt(50000)))
	require.NoError(t, err)
	require.IsType(t, &fill.Fill{}, res)
	require.NoError(t, sess.exchange.SaveState(ctx))
	sess.close()

	sess, err = newSession(ctx, c, migrations)
	require.NoError(t, err)
	defer sess.close()
	fills := sess.stats.Fills()
	require.Len(t, fills, 1, "fills are read back from the database")
	assert.Equal(t, res.(*fill.Fill).ID, fills[0].ID)
	assert.True(t, sess.exchange.Snapshot().Positions["BTC-USD"].Equal(decimal.RequireFromString("0.1")))
}
