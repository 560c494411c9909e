// Package constants provides shared constants for the mortgage-forecast application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxTermYears bounds the loan term and with it the number of records
	MaxTermYears = 100
)

// Repayment scheme names as they appear in configuration files.
const (
	SchemeLinear       = "linear"
	SchemeAnnuity      = "annuity"
	SchemeInterestOnly = "interest-only"
)

// Transitional levy rule defaults. Before TransitionStartYear an excess levy
// costs nothing; after TransitionEndYear it is charged in full.
const (
	TransitionStartYear = 2019
	TransitionEndYear   = 2049
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable summary format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV prints the monthly records as CSV on stdout
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides, e.g. MORTGAGE_ASSUMPTIONS_PURCHASE_PRICE.
	EnvPrefix = "MORTGAGE"

	// DefaultCSVFile is where the monthly records are exported.
	DefaultCSVFile = "hkp.csv"

	// DefaultChartFile is where the chart image is written.
	DefaultChartFile = "hkp.png"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout bounds how long in-flight requests may take on shutdown
	DefaultShutdownTimeout = 10 * time.Second
)
