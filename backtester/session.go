package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/thrasher-corp/execsim/backtester/config"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/exchange"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/execsim/backtester/funding"
	"github.com/thrasher-corp/execsim/backtester/persistence"
	"github.com/thrasher-corp/execsim/backtester/report"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/database/drivers"
	"github.com/thrasher-corp/execsim/database/repository/execution"
	"github.com/thrasher-corp/execsim/log"
)

var (
	errNilConfig       = errors.New("config is nil")
	errNoStateStore    = errors.New("no persistence store configured")
	errNoHistorySource = errors.New("no history source, supply --json, --csv or enable the database")
)

// session wires a configured exchange together with its collaborators
type session struct {
	cfg      *config.Config
	db       *database.Instance
	store    persistence.Store
	stats    *statistics.Statistic
	exchange *exchange.Exchange
}

func newSession(ctx context.Context, c *config.Config, migrations string) (s *session, err error) {
	if c == nil {
		return nil, errNilConfig
	}
	s = &session{cfg: c}
	defer func() {
		if err != nil {
			s.close()
		}
	}()

	var idb database.IDatabase
	if c.Database.Enabled {
		if s.db, err = drivers.Connect(&c.Database); err != nil {
			return nil, err
		}
		if err = s.db.Migrate("up", migrations, ""); err != nil {
			return nil, err
		}
		idb = s.db
	}

	if s.stats, err = newStatistic(ctx, idb); err != nil {
		return nil, err
	}

	if c.Persistence.Store != "" {
		if s.store, err = persistence.Parse(c.Persistence.Store, idb); err != nil {
			return nil, err
		}
	}

	lim, err := c.LimitsManager()
	if err != nil {
		return nil, err
	}
	ledger, err := funding.SetupLedger(c.Funding.InitialCash)
	if err != nil {
		return nil, err
	}

	settings := &exchange.Settings{
		Profile:       c.Profile(),
		Latency:       c.Latency(),
		Limits:        lim,
		Slippage:      c.SlippageModel(),
		Fees:          c.Commission(),
		Ledger:        ledger,
		Log:           s.stats,
		SaveAfterFill: c.Persistence.SaveAfterFill,
	}
	if s.store != nil {
		settings.Store = s.store
	}
	if c.Output.JSONPath != "" || c.Output.CSVPath != "" {
		exporter, err := report.NewExporter(s.stats, c.Output.JSONPath, c.Output.CSVPath)
		if err != nil {
			return nil, err
		}
		settings.Exporter = exporter
	}
	if s.exchange, err = exchange.Setup(settings); err != nil {
		return nil, err
	}

	if c.Persistence.LoadOnStart && s.store != nil {
		if err = s.loadState(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// newStatistic returns a database backed execution log seeded with previous
// fills when a database is connected
func newStatistic(ctx context.Context, db database.IDatabase) (*statistics.Statistic, error) {
	if db == nil {
		return statistics.NewStatistic(), nil
	}
	repo, err := execution.Setup(db)
	if err != nil {
		return nil, err
	}
	stats, err := statistics.NewDatabaseStatistic(repo)
	if err != nil {
		return nil, err
	}
	previous, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load execution history: %w", err)
	}
	if err := stats.Load(previous); err != nil {
		return nil, err
	}
	log.Debugf(log.Statistics, "Loaded %d fills from the database", len(previous))
	return stats, nil
}

// loadState restores the ledger from the store, keeping the initial ledger
// when nothing has been saved yet
func (s *session) loadState(ctx context.Context) error {
	if s.store == nil {
		return errNoStateStore
	}
	err := s.exchange.LoadState(ctx)
	if errors.Is(err, persistence.ErrNoSnapshot) {
		log.Infof(log.Persistence, "No saved ledger found, starting with %s cash", s.cfg.Funding.InitialCash)
		return nil
	}
	return err
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Errorf(log.Persistence, "Failed to close store: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.CloseConnection(); err != nil {
			log.Errorf(log.DatabaseMgr, "Failed to close database: %v", err)
		}
	}
}
