// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToDecimal converts a percentage such as 4.75 into 0.0475.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToDecimal(percentage)
}

// Grow compounds base by a fixed annual percentage over the elapsed number of
// years: base * (1 + annualPercent/100)^elapsedYears.
func Grow(base, annualPercent float64, elapsedYears int) float64 {
	return base * math.Pow(1+PercentToDecimal(annualPercent), float64(elapsedYears))
}

// MonthlyRate converts a nominal annual percentage into the effective monthly
// rate with true monthly compounding, (1 + annual/100)^(1/12) - 1.
func MonthlyRate(annualPercent float64) float64 {
	return math.Pow(1+PercentToDecimal(annualPercent), 1.0/constants.MonthsPerYear) - 1
}
