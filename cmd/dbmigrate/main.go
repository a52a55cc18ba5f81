package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thrasher-corp/execsim/backtester/config"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/database/drivers"
)

var (
	configFile   string
	migrationDir string
	command      string
	args         string
)

func main() {
	fmt.Println("execsim database migration tool")
	fmt.Println()

	flag.StringVar(&command, "command", "", "command to run status|up|up-by-one|up-to|down|create")
	flag.StringVar(&args, "args", "", "arguments to pass to goose")
	flag.StringVar(&configFile, "config", "", "config file to load, EXECSIM_ environment variables apply when empty")
	flag.StringVar(&migrationDir, "migrationdir", database.MigrationDir, "override migration folder")

	flag.Parse()

	conf, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if !conf.Database.Enabled {
		fmt.Println("Database support is disabled")
		os.Exit(1)
	}

	dbConn, err := drivers.Connect(&conf.Database)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer dbConn.CloseConnection()

	if database.Dialect(conf.Database.Driver) == database.DBSQLite3 {
		fmt.Printf("Database file: %s\n", conf.Database.Database)
	} else {
		fmt.Printf("Connected to: %s\n", conf.Database.Host)
	}

	if command == "" {
		_ = dbConn.Migrate("status", migrationDir, "")
		fmt.Println()
		flag.Usage()
		return
	}

	if err = dbConn.Migrate(command, migrationDir, args); err != nil {
		fmt.Println(err)
	}
}
