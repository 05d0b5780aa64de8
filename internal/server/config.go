package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/iwvelando/asset-allocation/internal/config"
	"github.com/iwvelando/asset-allocation/pkg/constants"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address          string               `yaml:"address"`
	StaticDir        string               `yaml:"staticDir,omitempty"`
	MaxRequestSize   string               `yaml:"maxRequestSize"`
	OpenBrowser      bool                 `yaml:"openBrowser"`
	Logging          config.LoggingConfig `yaml:"logging"`
	requestSizeBytes int64
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:          constants.DefaultServerAddress,
		MaxRequestSize:   fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes),
		OpenBrowser:      true,
		Logging:          config.LoggingConfig{},
		requestSizeBytes: constants.DefaultMaxRequestSizeBytes,
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestSizeBytes returns the configured request body limit in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// SetPort replaces the port of the listen address, keeping its host.
func (c *Config) SetPort(port int) {
	if port <= 0 {
		return
	}
	host := ""
	if i := strings.LastIndex(c.Address, ":"); i >= 0 {
		host = c.Address[:i]
	}
	c.Address = host + ":" + strconv.Itoa(port)
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	limit, err := ParseSize(c.MaxRequestSize)
	if err != nil {
		return fmt.Errorf("maxRequestSize: %w", err)
	}
	if limit <= 0 {
		limit = constants.DefaultMaxRequestSizeBytes
	}
	c.requestSizeBytes = limit
	c.MaxRequestSize = strconv.FormatInt(limit, 10)
	return nil
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// ParseSize reads a request body limit such as "512", "64K" or "2MB".
// Units are binary and case-insensitive; an empty value means the default.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	digits := strings.TrimRightFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	unit := strings.TrimSpace(s[len(digits):])
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in %q", unit, value)
	}
	if digits == "" {
		return 0, fmt.Errorf("no byte count in %q", value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad byte count in %q: %w", value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative byte count in %q", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("%q does not fit in 64 bits", value)
	}
	return n * multiplier, nil
}
