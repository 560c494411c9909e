// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/taxrules"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-forecast.
type Configuration struct {
	Assumptions Assumptions   `yaml:"assumptions" json:"assumptions"`
	Logging     LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv
	CSVFile   string `yaml:"csvFile,omitempty" json:"csvFile,omitempty"`
	ChartFile string `yaml:"chartFile,omitempty" json:"chartFile,omitempty"`
}

// Assumptions is the snapshot of inputs for one projection. Percentages are
// expressed as e.g. 4.75 for 4.75%.
type Assumptions struct {
	Purchase    Purchase    `yaml:"purchase" json:"purchase"`
	Mortgage    Mortgage    `yaml:"mortgage" json:"mortgage"`
	Tax         Tax         `yaml:"tax" json:"tax"`
	Maintenance Maintenance `yaml:"maintenance" json:"maintenance"`
	Rent        Rent        `yaml:"rent" json:"rent"`
	Savings     Savings     `yaml:"savings" json:"savings"`
}

// Purchase describes the home and how it is paid for.
type Purchase struct {
	Price               float64          `yaml:"price" json:"price"`
	OwnContribution     float64          `yaml:"ownContribution" json:"ownContribution"`
	Year                int              `yaml:"year" json:"year"`
	AssessedValue       float64          `yaml:"assessedValue" json:"assessedValue"`
	AssessedValueGrowth float64          `yaml:"assessedValueGrowth" json:"assessedValueGrowth"`
	Costs               AcquisitionCosts `yaml:"costs" json:"costs"`
}

// AcquisitionCosts are the one-time costs of buying. The first four are not
// tax deductible, the rest are.
type AcquisitionCosts struct {
	TransferTaxPercentage float64 `yaml:"transferTaxPercentage" json:"transferTaxPercentage"`
	Notary                float64 `yaml:"notary" json:"notary"`
	Broker                float64 `yaml:"broker" json:"broker"`
	Other                 float64 `yaml:"other" json:"other"`
	MortgageFees          float64 `yaml:"mortgageFees" json:"mortgageFees"`
	Valuation             float64 `yaml:"valuation" json:"valuation"`
	BuildingSurvey        float64 `yaml:"buildingSurvey" json:"buildingSurvey"`
	OtherDeductible       float64 `yaml:"otherDeductible" json:"otherDeductible"`
}

// Mortgage holds the loan parameters.
type Mortgage struct {
	Scheme                 string  `yaml:"scheme" json:"scheme"` // linear, annuity, interest-only
	InitialRate            float64 `yaml:"initialRate" json:"initialRate"`
	RateAfterFixedPeriod   float64 `yaml:"rateAfterFixedPeriod" json:"rateAfterFixedPeriod"`
	FixedRateYears         int     `yaml:"fixedRateYears" json:"fixedRateYears"`
	TermYears              int     `yaml:"termYears" json:"termYears"`
	InterestOnlyPercentage float64 `yaml:"interestOnlyPercentage" json:"interestOnlyPercentage"`
	InterestOnlyRate       float64 `yaml:"interestOnlyRate" json:"interestOnlyRate"`
}

// Tax holds the taxpayer's bracket and the statutory tables.
type Tax struct {
	TopRate             float64             `yaml:"topRate" json:"topRate"`
	DeductionRates      []taxrules.YearRate `yaml:"deductionRates,omitempty" json:"deductionRates,omitempty"`
	LevyRates           []taxrules.YearRate `yaml:"levyRates,omitempty" json:"levyRates,omitempty"`
	TransitionStartYear int                 `yaml:"transitionStartYear" json:"transitionStartYear"`
	TransitionEndYear   int                 `yaml:"transitionEndYear" json:"transitionEndYear"`
}

// Maintenance is the monthly upkeep estimate.
type Maintenance struct {
	Monthly   float64 `yaml:"monthly" json:"monthly"`
	Inflation float64 `yaml:"inflation" json:"inflation"`
}

// Rent is the comparison rent.
type Rent struct {
	Monthly float64 `yaml:"monthly" json:"monthly"`
	Growth  float64 `yaml:"growth" json:"growth"`
}

// Savings is the voluntary monthly savings next to the mortgage.
type Savings struct {
	Monthly float64 `yaml:"monthly" json:"monthly"`
	Yield   float64 `yaml:"yield" json:"yield"`
}

// setDefaults registers a default for every scalar setting. The defaults
// describe a typical starter purchase and are meant to be overridden.
func setDefaults(v *viper.Viper) {
	v.SetDefault("assumptions.purchase.price", 400000.0)
	v.SetDefault("assumptions.purchase.ownContribution", 50000.0)
	v.SetDefault("assumptions.purchase.year", 2021)
	v.SetDefault("assumptions.purchase.assessedValueGrowth", 3.0)
	v.SetDefault("assumptions.purchase.costs.transferTaxPercentage", 2.0)
	v.SetDefault("assumptions.purchase.costs.notary", 1000.0)
	v.SetDefault("assumptions.purchase.costs.broker", 0.0)
	v.SetDefault("assumptions.purchase.costs.other", 0.0)
	v.SetDefault("assumptions.purchase.costs.mortgageFees", 3000.0)
	v.SetDefault("assumptions.purchase.costs.valuation", 500.0)
	v.SetDefault("assumptions.purchase.costs.buildingSurvey", 500.0)
	v.SetDefault("assumptions.purchase.costs.otherDeductible", 0.0)

	v.SetDefault("assumptions.mortgage.scheme", constants.SchemeAnnuity)
	v.SetDefault("assumptions.mortgage.initialRate", 1.45)
	v.SetDefault("assumptions.mortgage.fixedRateYears", 10)
	v.SetDefault("assumptions.mortgage.termYears", 30)
	v.SetDefault("assumptions.mortgage.interestOnlyPercentage", 0.0)

	v.SetDefault("assumptions.tax.topRate", 49.5)
	v.SetDefault("assumptions.tax.transitionStartYear", constants.TransitionStartYear)
	v.SetDefault("assumptions.tax.transitionEndYear", constants.TransitionEndYear)

	v.SetDefault("assumptions.maintenance.monthly", 300.0)
	v.SetDefault("assumptions.maintenance.inflation", 2.0)

	v.SetDefault("assumptions.rent.monthly", 1100.0)
	v.SetDefault("assumptions.rent.growth", 3.0)

	v.SetDefault("assumptions.savings.monthly", 0.0)
	v.SetDefault("assumptions.savings.yield", 0.0)

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.csvFile", constants.DefaultCSVFile)
	v.SetDefault("output.chartFile", constants.DefaultChartFile)
}

// derivedKeys have no fixed default; normalize fills them in when unset.
// They are bound explicitly so environment overrides reach them.
var derivedKeys = []string{
	"assumptions.purchase.assessedValue",
	"assumptions.mortgage.rateAfterFixedPeriod",
	"assumptions.mortgage.interestOnlyRate",
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range derivedKeys {
		// BindEnv only fails without a key.
		_ = v.BindEnv(key)
	}
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Default returns the configuration made of defaults and environment
// overrides only.
func Default() (*Configuration, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.normalize(v)
	return &configuration, nil
}

// normalize fills settings whose default depends on other settings.
func (conf *Configuration) normalize(v *viper.Viper) {
	a := &conf.Assumptions
	if !v.IsSet("assumptions.purchase.assessedValue") {
		// Assessed values usually sit well below the price paid.
		a.Purchase.AssessedValue = a.Purchase.Price * 0.8
	}
	if !v.IsSet("assumptions.mortgage.rateAfterFixedPeriod") {
		a.Mortgage.RateAfterFixedPeriod = a.Mortgage.InitialRate
	}
	// An unset interest-only rate stays 0 so the carve-out follows the rate
	// in force each month.
	a.applyTableDefaults()
}

func (a *Assumptions) applyTableDefaults() {
	if len(a.Tax.DeductionRates) == 0 {
		a.Tax.DeductionRates = taxrules.DefaultDeductionRates()
	}
	if len(a.Tax.LevyRates) == 0 {
		a.Tax.LevyRates = taxrules.DefaultLevyRates()
	}
	if a.Tax.TransitionStartYear == 0 && a.Tax.TransitionEndYear == 0 {
		transition := taxrules.DefaultTransition()
		a.Tax.TransitionStartYear = transition.StartYear
		a.Tax.TransitionEndYear = transition.EndYear
	}
}
