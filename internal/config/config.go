// Package config defines the application configuration and loads it with
// viper from a YAML file and ASSET_ALLOCATION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/iwvelando/asset-allocation/internal/allocation"
	"github.com/iwvelando/asset-allocation/pkg/constants"
	"github.com/iwvelando/asset-allocation/pkg/format"
)

// Configuration holds all configuration for asset-allocation.
type Configuration struct {
	Plan    PlanConfig    `mapstructure:"plan" yaml:"plan"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
}

// PlanConfig locates the plan file.
type PlanConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Select string `mapstructure:"select" yaml:"select,omitempty"` // JSONPath to the plan inside a larger document
}

// ReportConfig holds the wording and number conventions of the text report.
type ReportConfig struct {
	CurrencySymbol     string `mapstructure:"currencySymbol" yaml:"currencySymbol"`
	DecimalSeparator   string `mapstructure:"decimalSeparator" yaml:"decimalSeparator"`
	ThousandsSeparator string `mapstructure:"thousandsSeparator" yaml:"thousandsSeparator"`
	Template           string `mapstructure:"template" yaml:"template,omitempty"`
	Title              string `mapstructure:"title" yaml:"title"`
	Disclaimer         string `mapstructure:"disclaimer" yaml:"disclaimer"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // text, json, csv, markdown
}

// Allocation converts the report settings into the engine's ReportConfig.
func (r ReportConfig) Allocation() allocation.ReportConfig {
	return allocation.ReportConfig{
		Money: format.Money{
			CurrencySymbol:     r.CurrencySymbol,
			DecimalSeparator:   r.DecimalSeparator,
			ThousandsSeparator: r.ThousandsSeparator,
			Template:           r.Template,
		},
		Title:      r.Title,
		Disclaimer: r.Disclaimer,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("plan.path", constants.DefaultPlanFile)
	v.SetDefault("plan.select", "")
	v.SetDefault("report.currencySymbol", constants.DefaultCurrencySymbol)
	v.SetDefault("report.decimalSeparator", constants.DefaultDecimalSeparator)
	v.SetDefault("report.thousandsSeparator", constants.DefaultThousandsSeparator)
	v.SetDefault("report.template", "$1")
	v.SetDefault("report.title", constants.DefaultReportTitle)
	v.SetDefault("report.disclaimer", constants.DefaultDisclaimer)
	v.SetDefault("output.format", constants.OutputFormatText)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Default returns the built-in configuration with environment overrides applied.
func Default() (*Configuration, error) {
	return decode(newViper())
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return Default()
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return Default()
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}
