package config

import (
	"fmt"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"github.com/iwvelando/mortgage-forecast/pkg/validation"
)

// ShortfallError reports an own contribution that does not cover the
// non-deductible purchase costs, which would need a loan above the value of
// the home.
type ShortfallError struct {
	Required  float64
	Available float64
}

// Shortfall is the missing amount.
func (e *ShortfallError) Shortfall() float64 {
	return e.Required - e.Available
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("own contribution %.2f must cover at least the non-deductible purchase costs of %.2f (short by %.2f)",
		e.Available, e.Required, e.Shortfall())
}

// Validate returns the first configuration error that makes a projection
// impossible. It must pass before any month is computed.
func (a Assumptions) Validate() error {
	acquisition := a.Acquisition()
	// Amounts that agree to the cent count as covered.
	if a.Purchase.OwnContribution < acquisition.NonDeductible &&
		!mathutil.WithinTolerance(a.Purchase.OwnContribution, acquisition.NonDeductible, constants.CurrencyTolerance) {
		return &ShortfallError{Required: acquisition.NonDeductible, Available: a.Purchase.OwnContribution}
	}
	if acquisition.LoanAmount < 0 {
		return fmt.Errorf("own contribution %.2f exceeds the gross purchase cost %.2f",
			a.Purchase.OwnContribution, acquisition.Gross)
	}

	if _, err := a.LoanTerms(); err != nil {
		return err
	}
	if a.Mortgage.TermYears <= 0 {
		return fmt.Errorf("mortgage term must be positive, got %d years", a.Mortgage.TermYears)
	}
	if a.Mortgage.TermYears > constants.MaxTermYears {
		return fmt.Errorf("mortgage term of %d years exceeds the maximum of %d years",
			a.Mortgage.TermYears, constants.MaxTermYears)
	}
	if a.Mortgage.FixedRateYears < 0 {
		return fmt.Errorf("fixed rate period cannot be negative, got %d years", a.Mortgage.FixedRateYears)
	}

	percentages := []struct {
		name  string
		value float64
	}{
		{"interest-only percentage", a.Mortgage.InterestOnlyPercentage},
		{"top income tax rate", a.Tax.TopRate},
		{"transfer tax percentage", a.Purchase.Costs.TransferTaxPercentage},
	}
	for _, p := range percentages {
		if err := validation.ValidatePercentage(p.name, p.value); err != nil {
			return err
		}
	}

	rates := []struct {
		name  string
		value float64
	}{
		{"initial interest rate", a.Mortgage.InitialRate},
		{"interest rate after fixed period", a.Mortgage.RateAfterFixedPeriod},
		{"interest-only rate", a.Mortgage.InterestOnlyRate},
		{"assessed value growth", a.Purchase.AssessedValueGrowth},
		{"maintenance inflation", a.Maintenance.Inflation},
		{"rent growth", a.Rent.Growth},
		{"savings yield", a.Savings.Yield},
	}
	for _, r := range rates {
		if err := validation.ValidateRate(r.name, r.value); err != nil {
			return err
		}
	}

	rules, err := a.TaxRules()
	if err != nil {
		return err
	}
	return rules.Validate()
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are allowed but probably unintended.
func (conf *Configuration) ValidateConfiguration() []string {
	a := conf.Assumptions

	checker := validation.AssumptionChecker{
		PurchaseYear:        a.Purchase.Year,
		FixedRateYears:      a.Mortgage.FixedRateYears,
		TermYears:           a.Mortgage.TermYears,
		TransitionStartYear: a.Tax.TransitionStartYear,
		Rates: map[string]float64{
			"initial interest rate":            a.Mortgage.InitialRate,
			"interest rate after fixed period": a.Mortgage.RateAfterFixedPeriod,
			"interest-only rate":               a.Mortgage.InterestOnlyRate,
			"assessed value growth":            a.Purchase.AssessedValueGrowth,
			"maintenance inflation":            a.Maintenance.Inflation,
			"rent growth":                      a.Rent.Growth,
			"savings yield":                    a.Savings.Yield,
		},
	}
	if len(a.Tax.DeductionRates) > 0 {
		checker.FirstTableYear = a.Tax.DeductionRates[0].Year
		for _, entry := range a.Tax.DeductionRates {
			if entry.Year < checker.FirstTableYear {
				checker.FirstTableYear = entry.Year
			}
		}
	}
	if a.Rent.Monthly == 0 {
		checker.Notes = append(checker.Notes, "comparison rent is 0; buy-vs-rent figures only reflect owning costs")
	}

	return checker.Warnings()
}
