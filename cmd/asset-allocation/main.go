// Command asset-allocation turns a plan of target percentages into a
// monetary allocation report, validates plans and serves a local web UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iwvelando/asset-allocation/internal/config"
	"github.com/iwvelando/asset-allocation/pkg/constants"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what every subcommand needs. It is handed to Execute as the
// first extra argument.
type app struct {
	conf   *config.Configuration
	logger *zap.Logger
}

func appFrom(args []interface{}) *app {
	if len(args) > 0 {
		if a, ok := args[0].(*app); ok {
			return a
		}
	}
	conf, _ := config.Default()
	return &app{conf: conf, logger: zap.NewNop()}
}

func main() {
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	completion().Complete(name)

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&calcCmd{}, "allocation")
	commander.Register(&validateCmd{}, "allocation")
	commander.Register(&serveCmd{}, "server")
	commander.ImportantFlag("config")

	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(int(subcommands.ExitFailure))
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	status := commander.Execute(context.Background(), &app{conf: conf, logger: logger})
	_ = logger.Sync()
	os.Exit(int(status))
}
