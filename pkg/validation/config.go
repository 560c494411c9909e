// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
	"sort"
)

// maxPlausibleRate is the annual percentage above which a rate is most
// likely a typo (e.g. 475 instead of 4.75).
const maxPlausibleRate = 25.0

// ValidatePercentage checks that a fraction-like percentage lies in [0, 100].
func ValidatePercentage(name string, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %.2f", name, value)
	}
	return nil
}

// ValidateRate checks that an annual rate is a finite percentage above -100,
// the point where compounding stops being defined.
func ValidateRate(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number, got %v", name, value)
	}
	if value <= -100 {
		return fmt.Errorf("%s must be above -100%%, got %.2f", name, value)
	}
	return nil
}

// AssumptionChecker collects the settings that are checked for plausibility.
type AssumptionChecker struct {
	PurchaseYear        int
	FixedRateYears      int
	TermYears           int
	FirstTableYear      int
	TransitionStartYear int
	Rates               map[string]float64
	Notes               []string
}

// Warnings returns human-readable warnings, sorted for stable output.
func (c AssumptionChecker) Warnings() []string {
	var warnings []string

	if c.FirstTableYear != 0 && c.PurchaseYear < c.FirstTableYear {
		warnings = append(warnings, fmt.Sprintf("purchase year %d is before the first tabulated tax year %d; the first entry is used",
			c.PurchaseYear, c.FirstTableYear))
	}
	if c.TransitionStartYear != 0 && c.PurchaseYear < c.TransitionStartYear {
		warnings = append(warnings, fmt.Sprintf("purchase year %d is before the levy transition start %d",
			c.PurchaseYear, c.TransitionStartYear))
	}
	if c.FixedRateYears > c.TermYears {
		warnings = append(warnings, fmt.Sprintf("fixed rate period of %d years exceeds the %d year term; the rate after the fixed period is never used",
			c.FixedRateYears, c.TermYears))
	}

	names := make([]string, 0, len(c.Rates))
	for name := range c.Rates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rate := c.Rates[name]
		if rate < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f%%)", name, rate))
		} else if rate > maxPlausibleRate {
			warnings = append(warnings, fmt.Sprintf("%s of %.2f%% looks implausibly high", name, rate))
		}
	}

	return append(warnings, c.Notes...)
}
