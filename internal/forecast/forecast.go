// Package forecast defines the data structures related to a home purchase
// projection and includes functions for computing it.
package forecast

import (
	"fmt"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/loans"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"github.com/iwvelando/mortgage-forecast/pkg/taxrules"
	"go.uber.org/zap"
)

// Projection holds the input snapshot, the derived purchase figures and one
// record per month of the loan term.
type Projection struct {
	Assumptions config.Assumptions
	Acquisition config.Acquisition
	Terms       loans.Terms
	Records     []MonthRecord
}

// Project runs the monthly projection over the full loan term. The
// assumptions are validated first; no record is produced when they are
// invalid.
func Project(logger *zap.Logger, assumptions config.Assumptions) (*Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := assumptions.Validate(); err != nil {
		return nil, err
	}
	terms, err := assumptions.LoanTerms()
	if err != nil {
		return nil, err
	}
	rules, err := assumptions.TaxRules()
	if err != nil {
		return nil, err
	}

	acquisition := assumptions.Acquisition()
	logger.Debug("starting projection",
		zap.String("op", "forecast.Project"),
		zap.String("scheme", terms.Scheme.String()),
		zap.Float64("loan", acquisition.LoanAmount),
		zap.Int("termYears", terms.TermYears),
	)

	records, err := projectMonths(assumptions, terms, rules, acquisition)
	if err != nil {
		return nil, err
	}

	logger.Debug("projection complete",
		zap.String("op", "forecast.Project"),
		zap.Int("months", len(records)),
		zap.Float64("remainingBalance", records[len(records)-1].RemainingBalance),
	)

	return &Projection{
		Assumptions: assumptions,
		Acquisition: acquisition,
		Terms:       terms,
		Records:     records,
	}, nil
}

func projectMonths(a config.Assumptions, terms loans.Terms, rules taxrules.Rules, acquisition config.Acquisition) ([]MonthRecord, error) {
	records := make([]MonthRecord, 0, terms.TermMonths())

	original := acquisition.LoanAmount
	remaining := original
	savingsRate := mathutil.MonthlyRate(a.Savings.Yield)
	savingsBalance := 0.0
	advantage := 0.0

	for year := 0; year < terms.TermYears; year++ {
		// Everything that grows does so once a year.
		assessedValue := mathutil.Grow(a.Purchase.AssessedValue, a.Purchase.AssessedValueGrowth, year)
		maintenance := mathutil.Grow(a.Maintenance.Monthly, a.Maintenance.Inflation, year)
		rent := mathutil.Grow(a.Rent.Monthly, a.Rent.Growth, year)

		for month := 0; month < constants.MonthsPerYear; month++ {
			split, err := loans.Amortize(terms, remaining, original, year)
			if err != nil {
				return nil, fmt.Errorf("year %d month %d: %w", year, month, err)
			}
			remaining -= split.Principal

			deduction := rules.InterestDeduction(split.DeductibleInterest, year)
			levy := rules.OwnershipLevy(assessedValue, year)
			taxAdvantage, taxDisadvantage := rules.NetEffect(deduction, levy, year)

			netInterest := split.Interest() - taxAdvantage
			runningCosts := netInterest + taxDisadvantage + maintenance
			outlay := runningCosts + split.Principal + a.Savings.Monthly

			advantage += rent - runningCosts

			savingsBalance = savingsBalance*(1+savingsRate) + a.Savings.Monthly

			records = append(records, MonthRecord{
				Year:                     year,
				Month:                    month,
				Principal:                split.Principal,
				RemainingBalance:         remaining,
				Interest:                 split.Interest(),
				DeductibleInterest:       split.DeductibleInterest,
				NonDeductibleInterest:    split.NonDeductibleInterest,
				InterestDeduction:        deduction,
				OwnershipLevy:            levy,
				TaxAdvantage:             taxAdvantage,
				TaxDisadvantage:          taxDisadvantage,
				NetInterest:              netInterest,
				AssessedValue:            assessedValue,
				Maintenance:              maintenance,
				SavingsContribution:      a.Savings.Monthly,
				Outlay:                   outlay,
				Rent:                     rent,
				SavingsBalance:           savingsBalance,
				AdvantageVsAlwaysRenting: advantage - acquisition.OneTimeNetCost,
				AdvantageVsRentingForNow: advantage,
			})
		}
	}

	return records, nil
}
