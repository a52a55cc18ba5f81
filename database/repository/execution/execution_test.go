package execution

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/database"
	sqlite "github.com/thrasher-corp/execsim/database/drivers/sqlite3"
	"github.com/thrasher-corp/execsim/exchanges/order"
	testutils "github.com/thrasher-corp/execsim/internal/testing/utils"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	inst, err := sqlite.Connect(&database.Config{
		Enabled:  true,
		Driver:   database.DBSQLite3,
		Database: filepath.Join(t.TempDir(), "execution.db"),
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

func testFill(t *testing.T, symbol string, side order.Side, ts time.Time) *fill.Fill {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return &fill.Fill{
		ID:            id,
		Timestamp:     ts,
		Profile:       "simulated",
		Symbol:        symbol,
		Side:          side,
		Type:          order.Market,
		Amount:        decimal.RequireFromString("0.1"),
		ExpectedPrice: decimal.NewFromInt(50000),
		FillPrice:     decimal.NewFromInt(50090),
		Slippage:      decimal.NewFromInt(9),
		SlippageBps:   decimal.NewFromInt(18),
		Fee:           decimal.RequireFromString("10.018"),
		Notional:      decimal.NewFromInt(5009),
		Success:       true,
	}
}

func TestSetup(t *testing.T) {
	_, err := Setup(nil)
	assert.ErrorIs(t, err, errNilDatabase)
	_, err = Setup(&database.Instance{})
	assert.ErrorIs(t, err, database.ErrDatabaseNotConnected)
}

func TestInsertAndRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	assert.ErrorIs(t, db.Insert(ctx, nil), errNilFill)

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := testFill(t, "BTC/USD", order.Buy, start)
	second := testFill(t, "ETH/USD", order.Sell, start.Add(time.Minute))
	second.Type = order.Limit
	second.IsMaker = true
	second.Profile = ""
	require.NoError(t, db.Insert(ctx, second))
	require.NoError(t, db.Insert(ctx, first))
	assert.Error(t, db.Insert(ctx, first), "duplicate id")

	all, err := db.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "50090", all[0].FillPrice.String())
	assert.Equal(t, "10.018", all[0].Fee.String())
	assert.Equal(t, "18", all[0].SlippageBps.String())
	assert.Equal(t, "simulated", all[0].Profile)
	assert.True(t, all[0].Success)
	assert.True(t, start.Equal(all[0].Timestamp))

	assert.Equal(t, order.Sell, all[1].Side)
	assert.Equal(t, order.Limit, all[1].Type)
	assert.True(t, all[1].IsMaker)
	assert.Empty(t, all[1].Profile)

	eth, err := db.BySymbol(ctx, "ETH/USD")
	require.NoError(t, err)
	require.Len(t, eth, 1)
	assert.Equal(t, second.ID, eth[0].ID)

	none, err := db.BySymbol(ctx, "SOL/USD")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRowToFillErrors(t *testing.T) {
	t.Parallel()
	r := &row{ID: "not-a-uuid"}
	_, err := r.toFill()
	assert.Error(t, err)

	r.ID = uuid.Must(uuid.NewV4()).String()
	r.Side = "HOLD"
	_, err = r.toFill()
	assert.ErrorIs(t, err, order.ErrSideIsInvalid)

	r.Side = "BUY"
	r.OrderType = "STOP"
	_, err = r.toFill()
	assert.ErrorIs(t, err, order.ErrTypeIsInvalid)
}
