package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/iwvelando/asset-allocation/internal/server"
	"github.com/iwvelando/asset-allocation/pkg/constants"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	port         int
	dir          string
	planFile     string
	selector     string
	serverConfig string
	noBrowser    bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the local web UI" }
func (*serveCmd) Usage() string {
	return `serve [-port <port>] [-dir <static dir>] [-plan <file>] [-no-browser]

  Serves the allocation web UI and its JSON API until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, fmt.Sprintf("port to listen on (default %d)", constants.DefaultServerPort))
	f.StringVar(&c.dir, "dir", "", "serve static files from this directory instead of the embedded UI")
	f.StringVar(&c.planFile, "plan", "", "plan file (JSON or YAML); defaults to the configured plan path")
	f.StringVar(&c.selector, "select", "", "JSONPath of the plan inside a larger document")
	f.StringVar(&c.serverConfig, "server-config", constants.DefaultServerConfigFile, "path to the server configuration file")
	f.BoolVar(&c.noBrowser, "no-browser", false, "do not open a browser window")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)

	cfg, err := server.LoadConfig(c.serverConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cfg.SetPort(c.port)
	if c.dir != "" {
		cfg.StaticDir = c.dir
	}
	if c.noBrowser {
		cfg.OpenBrowser = false
	}

	logger := a.logger
	if cfg.Logging.Level != "" || cfg.Logging.OutputFile != "" {
		if serverLogger, err := initializeLogger(cfg.Logging, ""); err == nil {
			logger = serverLogger
			defer func() { _ = serverLogger.Sync() }()
		} else {
			a.logger.Warn("ignoring server logging configuration",
				zap.String("op", "serve"),
				zap.Error(err),
			)
		}
	}

	handler := server.NewHandler(logger, server.Options{
		PlanPath:       firstNonEmpty(c.planFile, a.conf.Plan.Path, constants.DefaultPlanFile),
		Selector:       firstNonEmpty(c.selector, a.conf.Plan.Select),
		Report:         a.conf.Report.Allocation(),
		StaticDir:      cfg.StaticDir,
		MaxRequestSize: cfg.RequestSizeBytes(),
		Version:        version,
	})

	ln, err := server.Listen(cfg.Address)
	if err != nil {
		if errors.Is(err, server.ErrAddressInUse) {
			fmt.Fprintf(os.Stderr, "Error: port %s is already in use, try another port with -port\n", portOf(cfg.Address))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}

	url := "http://localhost:" + portOf(ln.Addr().String())
	fmt.Printf("Local server started: %s\n", url)
	fmt.Println("Press Ctrl+C to stop the server")
	logger.Info("server listening",
		zap.String("op", "serve"),
		zap.String("address", ln.Addr().String()),
	)

	if cfg.OpenBrowser {
		if err := openBrowser(url); err != nil {
			logger.Warn("failed to open browser",
				zap.String("op", "serve"),
				zap.Error(err),
			)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, logger, ln, handler); err != nil {
		logger.Error("server stopped with error",
			zap.String("op", "serve"),
			zap.Error(err),
		)
		return subcommands.ExitFailure
	}
	fmt.Println("\nServer stopped")
	return subcommands.ExitSuccess
}

func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
