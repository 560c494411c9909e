// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/pkg/taxrules"
)

// ReferenceLoan is the principal used by the published reference schedules
// (115,000 at 4.75% over 30 years).
const ReferenceLoan = 115000.0

// ReferenceAssumptions returns assumptions without purchase costs or own
// contribution, so the loan equals ReferenceLoan, at a flat 4.75% over 30
// years with the given scheme.
func ReferenceAssumptions(scheme string) config.Assumptions {
	return config.Assumptions{
		Purchase: config.Purchase{
			Price:               ReferenceLoan,
			Year:                2021,
			AssessedValue:       ReferenceLoan * 0.8,
			AssessedValueGrowth: 3,
		},
		Mortgage: config.Mortgage{
			Scheme:               scheme,
			InitialRate:          4.75,
			RateAfterFixedPeriod: 4.75,
			FixedRateYears:       30,
			TermYears:            30,
		},
		Tax: config.Tax{
			TopRate:             49.5,
			DeductionRates:      taxrules.DefaultDeductionRates(),
			LevyRates:           taxrules.DefaultLevyRates(),
			TransitionStartYear: 2019,
			TransitionEndYear:   2049,
		},
		Maintenance: config.Maintenance{Monthly: 300, Inflation: 2},
		Rent:        config.Rent{Monthly: 1100, Growth: 3},
	}
}

// StarterAssumptions mirrors the built-in defaults: a 400,000 home with
// itemized purchase costs and an annuity mortgage.
func StarterAssumptions() config.Assumptions {
	return config.Assumptions{
		Purchase: config.Purchase{
			Price:               400000,
			OwnContribution:     50000,
			Year:                2021,
			AssessedValue:       320000,
			AssessedValueGrowth: 3,
			Costs: config.AcquisitionCosts{
				TransferTaxPercentage: 2,
				Notary:                1000,
				MortgageFees:          3000,
				Valuation:             500,
				BuildingSurvey:        500,
			},
		},
		Mortgage: config.Mortgage{
			Scheme:               "annuity",
			InitialRate:          1.45,
			RateAfterFixedPeriod: 1.45,
			FixedRateYears:       10,
			TermYears:            30,
			InterestOnlyRate:     1.45,
		},
		Tax: config.Tax{
			TopRate:             49.5,
			DeductionRates:      taxrules.DefaultDeductionRates(),
			LevyRates:           taxrules.DefaultLevyRates(),
			TransitionStartYear: 2019,
			TransitionEndYear:   2049,
		},
		Maintenance: config.Maintenance{Monthly: 300, Inflation: 2},
		Rent:        config.Rent{Monthly: 1100, Growth: 3},
	}
}
