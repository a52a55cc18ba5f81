package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thrasher-corp/execsim/backtester/config"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/log"
	"github.com/thrasher-corp/execsim/signaler"
	"github.com/urfave/cli/v2"
)

var (
	configPath   string
	migrationDir string
	cfg          *config.Config
)

func main() {
	app := cli.NewApp()
	app.Name = "execsim"
	app.Usage = "simulate crypto order execution with slippage, fees and a persistent ledger"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "the config file to load, defaults and EXECSIM_ environment variables are used when empty",
			EnvVars:     []string{"EXECSIM_CONFIG"},
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "migrationdir",
			Value:       database.MigrationDir,
			Usage:       "the database migration folder",
			Destination: &migrationDir,
		},
	}
	app.Before = loadConfig
	app.After = func(*cli.Context) error {
		return log.CloseLogger()
	}
	app.Commands = []*cli.Command{
		executeCommand,
		replayCommand,
		portfolioCommand,
		statsCommand,
		configCommand,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-signaler.WaitForInterrupt()
		fmt.Println("execsim interrupted")
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(_ *cli.Context) error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err = log.SetupGlobalLogger(&cfg.Logging); err != nil {
		return fmt.Errorf("could not setup logger: %w", err)
	}
	cfg.PrintSetting()
	return nil
}
