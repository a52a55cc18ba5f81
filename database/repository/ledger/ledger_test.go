package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/execsim/database"
	sqlite "github.com/thrasher-corp/execsim/database/drivers/sqlite3"
	testutils "github.com/thrasher-corp/execsim/internal/testing/utils"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	inst, err := sqlite.Connect(&database.Config{
		Enabled:  true,
		Driver:   database.DBSQLite3,
		Database: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.CloseConnection() })
	migrations, err := testutils.MigrationDirFromCWD()
	require.NoError(t, err)
	require.NoError(t, inst.Migrate("up", migrations, ""))
	db, err := Setup(inst)
	require.NoError(t, err)
	return db
}

func TestSetup(t *testing.T) {
	_, err := Setup(nil)
	assert.ErrorIs(t, err, errNilDatabase)
	_, err = Setup(&database.Instance{})
	assert.ErrorIs(t, err, database.ErrDatabaseNotConnected)
}

func TestReplaceAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Get(ctx)
	assert.ErrorIs(t, err, ErrNoState)
	assert.ErrorIs(t, db.Replace(ctx, nil), errNilState)

	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Replace(ctx, &State{
		Cash: decimal.RequireFromString("4980.982"),
		Positions: []Holding{
			{Symbol: "BTC/USD", Amount: decimal.RequireFromString("0.1")},
			{Symbol: "ETH/USD", Amount: decimal.Zero},
		},
		UpdatedAt: updated,
	}))

	got, err := db.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4980.982", got.Cash.String())
	require.Len(t, got.Positions, 2)
	assert.Equal(t, "BTC/USD", got.Positions[0].Symbol)
	assert.Equal(t, "0.1", got.Positions[0].Amount.String())
	assert.True(t, got.Positions[1].Amount.IsZero())
	assert.True(t, updated.Equal(got.UpdatedAt))

	// last write wins
	require.NoError(t, db.Replace(ctx, &State{Cash: decimal.NewFromInt(10000)}))
	got, err = db.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10000", got.Cash.String())
	assert.Empty(t, got.Positions)
}

func TestReplaceRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Replace(ctx, &State{Cash: decimal.NewFromInt(5)}))

	err := db.Replace(ctx, &State{
		Cash: decimal.NewFromInt(7),
		Positions: []Holding{
			{Symbol: "BTC/USD", Amount: decimal.NewFromInt(1)},
			{Symbol: "BTC/USD", Amount: decimal.NewFromInt(2)},
		},
	})
	require.Error(t, err, "duplicate symbols violate the primary key")

	got, err := db.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", got.Cash.String())
	assert.Empty(t, got.Positions)
}
