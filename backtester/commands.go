package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/config"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/backtester/replay"
	"github.com/thrasher-corp/execsim/backtester/report"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"github.com/urfave/cli/v2"
)

var executeCommand = &cli.Command{
	Name:      "execute",
	Usage:     "simulates a single order against the ledger",
	ArgsUsage: "<symbol> <side> <amount> <price>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "symbol",
			Usage: "the symbol to trade, e.g. BTC-USD",
		},
		&cli.StringFlag{
			Name:  "side",
			Usage: "buy or sell",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "the base currency amount before lot size conformance",
		},
		&cli.StringFlag{
			Name:  "price",
			Usage: "the reference price",
		},
		&cli.StringFlag{
			Name:  "type",
			Value: "market",
			Usage: "market or limit, limit orders are charged the maker fee",
		},
		&cli.StringFlag{
			Name:  "volume",
			Usage: "the 24h traded volume, defaults to 1000000",
		},
		&cli.StringFlag{
			Name:  "spread",
			Usage: "the bid-ask spread percentage, defaults to 0.1",
		},
	},
	Action: executeOrder,
}

var replayCommand = &cli.Command{
	Name:      "replay",
	Usage:     "submits a CSV batch of orders and prints the portfolio and statistics",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "the CSV order batch with a symbol,side,type,amount,price,volume_24h,spread_pct header",
		},
		&cli.Float64Flag{
			Name:  "rate",
			Usage: "orders per second, overrides the config value when set",
		},
	},
	Action: replayOrders,
}

var portfolioCommand = &cli.Command{
	Name:   "portfolio",
	Usage:  "prints the persisted ledger",
	Action: showPortfolio,
}

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "prints execution statistics from an export or the database",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "json",
			Usage: "a JSON execution history export",
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "a CSV execution history export",
		},
	},
	Action: showStats,
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "config file helpers",
	Subcommands: []*cli.Command{
		{
			Name:      "generate",
			Usage:     "writes a config file populated with defaults",
			ArgsUsage: "<output>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "output",
					Value: "execsim.json",
					Usage: "the file to write",
				},
			},
			Action: generateConfig,
		},
		{
			Name:   "validate",
			Usage:  "loads and validates the config",
			Action: validateConfig,
		},
	},
}

// flagOrArg returns the named flag when set, otherwise the positional
// argument at index
func flagOrArg(c *cli.Context, name string, index int) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return c.Args().Get(index)
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}

func submitFromContext(c *cli.Context) (*order.Submit, error) {
	side, err := order.StringToOrderSide(flagOrArg(c, "side", 1))
	if err != nil {
		return nil, err
	}
	oType, err := order.StringToOrderType(c.String("type"))
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal("amount", flagOrArg(c, "amount", 2))
	if err != nil {
		return nil, err
	}
	price, err := parseDecimal("price", flagOrArg(c, "price", 3))
	if err != nil {
		return nil, err
	}
	s := order.NewMarketSubmit(flagOrArg(c, "symbol", 0), side, amount, price)
	s.Type = oType
	if c.IsSet("volume") {
		if s.Volume24h, err = parseDecimal("volume", c.String("volume")); err != nil {
			return nil, err
		}
	}
	if c.IsSet("spread") {
		if s.SpreadPct, err = parseDecimal("spread", c.String("spread")); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func executeOrder(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	s, err := submitFromContext(c)
	if err != nil {
		return err
	}
	sess, err := newSession(c.Context, cfg, migrationDir)
	if err != nil {
		return err
	}
	defer sess.close()

	res, execErr := sess.exchange.ExecuteOrder(*s)
	if res != nil {
		renderResults(os.Stdout, []fill.Result{res})
	}
	return errors.Join(execErr, sess.exchange.Finalize(c.Context))
}

func replayOrders(c *cli.Context) error {
	path := flagOrArg(c, "file", 0)
	if path == "" {
		return cli.ShowSubcommandHelp(c)
	}
	orders, err := replay.LoadOrdersFromFile(path)
	if err != nil {
		return err
	}
	ordersPerSecond := cfg.Replay.OrdersPerSecond
	if c.IsSet("rate") {
		ordersPerSecond = c.Float64("rate")
	}

	sess, err := newSession(c.Context, cfg, migrationDir)
	if err != nil {
		return err
	}
	defer sess.close()

	runner, err := replay.NewRunner(sess.exchange, ordersPerSecond, cfg.Replay.Burst)
	if err != nil {
		return err
	}
	outcome, runErr := runner.Run(c.Context, orders)
	if outcome != nil {
		renderResults(os.Stdout, outcome.Results)
	}
	renderPortfolio(os.Stdout, sess.exchange.Snapshot())
	sum := sess.stats.Statistics()
	renderSummary(os.Stdout, &sum)
	return errors.Join(runErr, outcome.Err(), sess.exchange.Finalize(c.Context))
}

func showPortfolio(c *cli.Context) error {
	sess, err := newSession(c.Context, cfg, migrationDir)
	if err != nil {
		return err
	}
	defer sess.close()
	if err := sess.loadState(c.Context); err != nil {
		return err
	}
	renderPortfolio(os.Stdout, sess.exchange.Snapshot())
	return nil
}

func showStats(c *cli.Context) error {
	var (
		fills []*fill.Fill
		err   error
	)
	switch {
	case c.IsSet("json"):
		var data []byte
		if data, err = os.ReadFile(c.String("json")); err != nil {
			return err
		}
		fills, err = report.ImportJSON(data)
	case c.IsSet("csv"):
		var f *os.File
		if f, err = os.Open(c.String("csv")); err != nil {
			return err
		}
		defer f.Close()
		fills, err = report.ReadCSV(f)
	case cfg.Database.Enabled:
		var sess *session
		if sess, err = newSession(c.Context, cfg, migrationDir); err != nil {
			return err
		}
		defer sess.close()
		fills = sess.stats.Fills()
	default:
		return errNoHistorySource
	}
	if err != nil {
		return err
	}
	stats := statistics.NewStatistic()
	if err := stats.Load(fills); err != nil {
		return err
	}
	sum := stats.Statistics()
	renderSummary(os.Stdout, &sum)
	return nil
}

func generateConfig(c *cli.Context) error {
	path := c.String("output")
	if c.NArg() > 0 && !c.IsSet("output") {
		path = c.Args().First()
	}
	if err := config.GenerateDefault().WriteConfig(path); err != nil {
		return err
	}
	fmt.Printf("Default config written to %s\n", path)
	return nil
}

func validateConfig(_ *cli.Context) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Println("Config is valid")
	return nil
}
