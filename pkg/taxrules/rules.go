package taxrules

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
)

// Transition describes the phase-in of an excess ownership levy. Up to and
// including StartYear nothing is payable, after EndYear everything is, and
// in between the payable share grows linearly.
type Transition struct {
	StartYear int
	EndYear   int
}

// DefaultTransition returns the statutory 2019-2049 phase-in.
func DefaultTransition() Transition {
	return Transition{StartYear: constants.TransitionStartYear, EndYear: constants.TransitionEndYear}
}

// Rules holds everything needed to compute the monthly tax effect of owning.
type Rules struct {
	PurchaseYear   int
	TopRatePercent float64
	Deduction      RateTable
	Levy           RateTable
	Transition     Transition
}

// Validate checks that the rules can be evaluated.
func (r Rules) Validate() error {
	if r.TopRatePercent < 0 || r.TopRatePercent > 100 {
		return fmt.Errorf("top income tax rate %.2f%% is outside [0, 100]", r.TopRatePercent)
	}
	if r.Transition.EndYear <= r.Transition.StartYear {
		return fmt.Errorf("transition end year %d must be after start year %d",
			r.Transition.EndYear, r.Transition.StartYear)
	}
	return nil
}

// CalendarYear maps a year offset since purchase to a calendar year.
func (r Rules) CalendarYear(yearOffset int) int {
	return r.PurchaseYear + yearOffset
}

// DeductionRate returns the effective deduction percentage for the year: the
// tabulated rate, never above the taxpayer's own top rate.
func (r Rules) DeductionRate(yearOffset int) float64 {
	return math.Min(r.Deduction.Lookup(r.CalendarYear(yearOffset)), r.TopRatePercent)
}

// InterestDeduction returns the monthly tax refund on deductible interest.
func (r Rules) InterestDeduction(monthlyInterest float64, yearOffset int) float64 {
	return monthlyInterest * mathutil.PercentToDecimal(r.DeductionRate(yearOffset))
}

// OwnershipLevy returns the monthly tax cost of the imputed ownership benefit.
func (r Rules) OwnershipLevy(assessedValue float64, yearOffset int) float64 {
	levyPercent := r.Levy.Lookup(r.CalendarYear(yearOffset))
	monthly := mathutil.ApplyPercentage(assessedValue, levyPercent) / constants.MonthsPerYear
	return mathutil.ApplyPercentage(monthly, r.TopRatePercent)
}

// NetEffect combines deduction and levy into a tax advantage or disadvantage.
// At most one of the two results is non-zero.
func (r Rules) NetEffect(deduction, levy float64, yearOffset int) (advantage, disadvantage float64) {
	if deduction >= levy {
		return deduction - levy, 0
	}

	year := r.CalendarYear(yearOffset)
	if year <= r.Transition.StartYear {
		return 0, 0
	}

	excess := levy - deduction
	if year > r.Transition.EndYear {
		return 0, excess
	}
	span := float64(r.Transition.EndYear - r.Transition.StartYear)
	return 0, excess * float64(year-r.Transition.StartYear) / span
}
