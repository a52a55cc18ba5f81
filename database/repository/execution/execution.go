package execution

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"github.com/thrasher-corp/sqlboiler/queries"
	"github.com/volatiletech/null"
)

const selectColumns = `SELECT id, executed_at, profile, symbol, side, order_type, amount,
expected_price, fill_price, slippage, slippage_bps, fee, notional, is_maker FROM execution`

// Setup returns a usable execution repository
func Setup(db database.IDatabase) (*DB, error) {
	if db == nil {
		return nil, errNilDatabase
	}
	if !db.IsConnected() {
		return nil, database.ErrDatabaseNotConnected
	}
	conn, err := db.GetSQL()
	if err != nil {
		return nil, err
	}
	return &DB{sql: conn}, nil
}

// Insert stores a fill
func (db *DB) Insert(ctx context.Context, f *fill.Fill) error {
	if f == nil {
		return errNilFill
	}
	r := toRow(f)
	_, err := db.sql.ExecContext(ctx, `INSERT INTO execution (id, executed_at, profile, symbol, side,
order_type, amount, expected_price, fill_price, slippage, slippage_bps, fee, notional, is_maker)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		r.ID, r.ExecutedAt, r.Profile, r.Symbol, r.Side, r.OrderType,
		r.Amount.String(), r.ExpectedPrice.String(), r.FillPrice.String(), r.Slippage.String(),
		r.SlippageBps, r.Fee.String(), r.Notional.String(), r.IsMaker)
	if err != nil {
		return fmt.Errorf("insert execution %s: %w", r.ID, err)
	}
	return nil
}

// All returns every stored fill ordered by execution time
func (db *DB) All(ctx context.Context) ([]*fill.Fill, error) {
	var rows []row
	if err := queries.Raw(selectColumns+` ORDER BY executed_at, id`).Bind(ctx, db.sql, &rows); err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// BySymbol returns the stored fills for a symbol ordered by execution time
func (db *DB) BySymbol(ctx context.Context, symbol string) ([]*fill.Fill, error) {
	var rows []row
	if err := queries.Raw(selectColumns+` WHERE symbol = $1 ORDER BY executed_at, id`, symbol).Bind(ctx, db.sql, &rows); err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func toRow(f *fill.Fill) *row {
	return &row{
		ID:            f.ID.String(),
		ExecutedAt:    f.Timestamp.UTC(),
		Profile:       null.NewString(f.Profile, f.Profile != ""),
		Symbol:        f.Symbol,
		Side:          f.Side.String(),
		OrderType:     f.Type.String(),
		Amount:        f.Amount,
		ExpectedPrice: f.ExpectedPrice,
		FillPrice:     f.FillPrice,
		Slippage:      f.Slippage,
		SlippageBps:   null.NewString(f.SlippageBps.String(), true),
		Fee:           f.Fee,
		Notional:      f.Notional,
		IsMaker:       f.IsMaker,
	}
}

func fromRows(rows []row) ([]*fill.Fill, error) {
	resp := make([]*fill.Fill, 0, len(rows))
	for x := range rows {
		f, err := rows[x].toFill()
		if err != nil {
			return nil, err
		}
		resp = append(resp, f)
	}
	return resp, nil
}

func (r *row) toFill() (*fill.Fill, error) {
	id, err := uuid.FromString(r.ID)
	if err != nil {
		return nil, fmt.Errorf("execution %q: %w", r.ID, err)
	}
	side, err := order.StringToOrderSide(r.Side)
	if err != nil {
		return nil, fmt.Errorf("execution %s: %w", r.ID, err)
	}
	oType, err := order.StringToOrderType(r.OrderType)
	if err != nil {
		return nil, fmt.Errorf("execution %s: %w", r.ID, err)
	}
	f := &fill.Fill{
		ID:            id,
		Timestamp:     r.ExecutedAt,
		Profile:       r.Profile.String,
		Symbol:        r.Symbol,
		Side:          side,
		Type:          oType,
		Amount:        r.Amount,
		ExpectedPrice: r.ExpectedPrice,
		FillPrice:     r.FillPrice,
		Slippage:      r.Slippage,
		Fee:           r.Fee,
		Notional:      r.Notional,
		IsMaker:       r.IsMaker,
		Success:       true,
	}
	if r.SlippageBps.Valid {
		f.SlippageBps, err = decimal.NewFromString(r.SlippageBps.String)
		if err != nil {
			return nil, fmt.Errorf("execution %s slippage bps: %w", r.ID, err)
		}
	}
	return f, nil
}
