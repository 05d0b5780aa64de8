package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iwvelando/asset-allocation/internal/config"
)

// logPresets maps a logging.format value to the zap preset it starts from.
var logPresets = map[string]func() zap.Config{
	"console": func() zap.Config {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		return cfg
	},
	"json": zap.NewProductionConfig,
}

// initializeLogger builds the process logger. A non-empty -log-level flag
// replaces the configured level.
func initializeLogger(logging config.LoggingConfig, levelFlag string) (*zap.Logger, error) {
	name := firstNonEmpty(levelFlag, logging.Level, "info")
	if name == "warning" {
		name = "warn"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("logging.level %q: %w", name, err)
	}

	format := firstNonEmpty(logging.Format, "console")
	preset, ok := logPresets[format]
	if !ok {
		return nil, fmt.Errorf("logging.format %q: want console or json", format)
	}
	cfg := preset()
	cfg.Level = zap.NewAtomicLevelAt(level)

	if path := logging.OutputFile; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("logging.outputFile %s: %w", path, err)
		}
		// zap opens lazily; fail here instead of at the first log line
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("logging.outputFile %s: %w", path, err)
		}
		_ = f.Close()
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	return cfg.Build()
}
