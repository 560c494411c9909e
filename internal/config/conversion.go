// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"github.com/iwvelando/mortgage-forecast/pkg/loans"
	"github.com/iwvelando/mortgage-forecast/pkg/taxrules"
)

// LoanTerms converts the mortgage settings to loans.Terms. The scheme is
// resolved once here so an unknown scheme fails before any month is computed.
func (a Assumptions) LoanTerms() (loans.Terms, error) {
	scheme, err := loans.ParseScheme(a.Mortgage.Scheme)
	if err != nil {
		return loans.Terms{}, err
	}

	return loans.Terms{
		Scheme:                 scheme,
		InitialRate:            a.Mortgage.InitialRate,
		RateAfterFixedPeriod:   a.Mortgage.RateAfterFixedPeriod,
		FixedRateYears:         a.Mortgage.FixedRateYears,
		TermYears:              a.Mortgage.TermYears,
		InterestOnlyPercentage: a.Mortgage.InterestOnlyPercentage,
		InterestOnlyRate:       a.Mortgage.InterestOnlyRate,
	}, nil
}

// TaxRules converts the tax settings to taxrules.Rules, falling back to the
// statutory tables when none are configured.
func (a Assumptions) TaxRules() (taxrules.Rules, error) {
	a.applyTableDefaults()

	deduction, err := taxrules.NewRateTable(a.Tax.DeductionRates)
	if err != nil {
		return taxrules.Rules{}, fmt.Errorf("invalid deduction rates: %w", err)
	}
	levy, err := taxrules.NewRateTable(a.Tax.LevyRates)
	if err != nil {
		return taxrules.Rules{}, fmt.Errorf("invalid levy rates: %w", err)
	}

	return taxrules.Rules{
		PurchaseYear:   a.Purchase.Year,
		TopRatePercent: a.Tax.TopRate,
		Deduction:      deduction,
		Levy:           levy,
		Transition: taxrules.Transition{
			StartYear: a.Tax.TransitionStartYear,
			EndYear:   a.Tax.TransitionEndYear,
		},
	}, nil
}
