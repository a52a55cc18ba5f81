package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/log"
	"github.com/thrasher-corp/sqlboiler/queries"
)

// Setup returns a usable ledger repository
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

// Replace overwrites the stored ledger state inside a single transaction
func (db *DB) Replace(ctx context.Context, s *State) (err error) {
	if s == nil {
		return errNilState
	}
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginTx %w", err)
	}
	defer func() {
		if err != nil {
			if errRB := tx.Rollback(); errRB != nil {
				log.Errorf(log.DatabaseMgr, "Replace tx.Rollback %v", errRB)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM ledger_position`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM ledger_cash`); err != nil {
		return err
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_cash (id, cash, updated_at) VALUES ($1, $2, $3)`,
		1, s.Cash.String(), updated.UTC()); err != nil {
		return err
	}
	for x := range s.Positions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO ledger_position (symbol, amount) VALUES ($1, $2)`,
			s.Positions[x].Symbol, s.Positions[x].Amount.String()); err != nil {
			return fmt.Errorf("insert position %s: %w", s.Positions[x].Symbol, err)
		}
	}
	return tx.Commit()
}

// Get returns the stored ledger state
func (db *DB) Get(ctx context.Context) (*State, error) {
	var cash cashRow
	err := queries.Raw(`SELECT cash, updated_at FROM ledger_cash WHERE id = 1`).Bind(ctx, db.sql, &cash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoState
		}
		return nil, err
	}
	var holdings []Holding
	err = queries.Raw(`SELECT symbol, amount FROM ledger_position ORDER BY symbol`).Bind(ctx, db.sql, &holdings)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return &State{
		Cash:      cash.Cash,
		Positions: holdings,
		UpdatedAt: cash.UpdatedAt,
	}, nil
}
