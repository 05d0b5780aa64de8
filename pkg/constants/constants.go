// Package constants provides shared constants for the asset-allocation application.
package constants

// Plan defaults
const (
	// DefaultPlanFile is the plan file used when none is given on the command line
	DefaultPlanFile = "plan.json"

	// SumTolerance is the allowed deviation of a plan's percentage sum from 1.0
	// before a warning is raised
	SumTolerance = 0.001

	// ExpectedPercentageSum is the sum a complete plan is expected to reach
	ExpectedPercentageSum = 1.0

	// PercentageMultiplier is used for fraction to percent conversions
	PercentageMultiplier = 100.0

	// DecimalPlaces is the number of fractional digits shown for amounts
	DecimalPlaces = 2

	// PercentDecimalPlaces is the number of fractional digits shown for percentages
	PercentDecimalPlaces = 1

	// CurrencyTolerance is the tolerance for currency comparisons (one minor unit)
	CurrencyTolerance = 0.01
)

// Report defaults
const (
	// DefaultCurrencySymbol is prefixed to every rendered amount
	DefaultCurrencySymbol = "¥"

	// DefaultDecimalSeparator separates whole and fractional digits
	DefaultDecimalSeparator = "."

	// DefaultThousandsSeparator groups whole digits by three
	DefaultThousandsSeparator = ","

	// DefaultReportTitle is the heading of the text report
	DefaultReportTitle = "Asset Allocation Report"

	// DefaultDisclaimer closes the text report
	DefaultDisclaimer = "Investing involves risk; invest with caution."

	// BannerWidth is the width of the report's separator lines
	BannerWidth = 60
)

// Output format constants
const (
	// OutputFormatText is the human-readable report
	OutputFormatText = "text"

	// OutputFormatJSON is the machine-readable JSON document
	OutputFormatJSON = "json"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatMarkdown is a markdown document, rendered for terminals when printed
	OutputFormatMarkdown = "markdown"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default application configuration file name
	DefaultConfigFile = "asset-allocation.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "asset-allocation.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides
	EnvPrefix = "ASSET_ALLOCATION"
)

// Server configuration defaults
const (
	// DefaultServerPort is the port the development server listens on
	DefaultServerPort = 8000

	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8000"

	// DefaultMaxRequestSizeBytes is the default maximum API request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)
