// Package loans provides common loan processing utilities.
package loans

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
)

// ErrUnsupportedScheme is returned for a repayment scheme outside the
// supported set.
var ErrUnsupportedScheme = errors.New("unsupported repayment scheme")

// Scheme selects how the loan is repaid.
type Scheme int

const (
	// SchemeUnknown is the zero value and is never valid.
	SchemeUnknown Scheme = iota
	// Linear repays a fixed amount of principal every month.
	Linear
	// Annuity keeps principal plus interest constant every month.
	Annuity
	// InterestOnly never repays principal.
	InterestOnly
)

// String returns the configuration name of the scheme.
func (s Scheme) String() string {
	switch s {
	case Linear:
		return constants.SchemeLinear
	case Annuity:
		return constants.SchemeAnnuity
	case InterestOnly:
		return constants.SchemeInterestOnly
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme maps a configuration value onto a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case constants.SchemeLinear:
		return Linear, nil
	case constants.SchemeAnnuity:
		return Annuity, nil
	case constants.SchemeInterestOnly, "interestonly", "interest_only":
		return InterestOnly, nil
	default:
		return SchemeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedScheme, name)
	}
}

// Terms are the loan parameters that drive the amortization formulas. Rates
// and the interest-only fraction are percentages.
type Terms struct {
	Scheme                 Scheme
	InitialRate            float64
	RateAfterFixedPeriod   float64
	FixedRateYears         int
	TermYears              int
	InterestOnlyPercentage float64
	InterestOnlyRate       float64
}

// TermMonths returns the loan term in months.
func (t Terms) TermMonths() int {
	return t.TermYears * constants.MonthsPerYear
}

// AnnualRate returns the nominal annual rate in force in the given year.
func (t Terms) AnnualRate(yearOffset int) float64 {
	if yearOffset < t.FixedRateYears {
		return t.InitialRate
	}
	return t.RateAfterFixedPeriod
}

// Split is the outcome of one month of amortization.
type Split struct {
	Principal             float64
	DeductibleInterest    float64
	NonDeductibleInterest float64
}

// Interest returns the total interest charged for the month.
func (s Split) Interest() float64 {
	return s.DeductibleInterest + s.NonDeductibleInterest
}

// CalculateMonthlyPayment calculates the constant annuity payment for a loan
// using the standard amortization formula with a periodic (monthly) rate.
func CalculateMonthlyPayment(principal, monthlyRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(termMonths)))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, monthlyRate float64) float64 {
	return remainingPrincipal * monthlyRate
}

// Amortize computes the principal repayment and interest split for one month
// given the balance before repayment, the original balance and the number of
// whole years since the loan started.
func Amortize(terms Terms, remaining, original float64, yearOffset int) (Split, error) {
	if terms.TermYears <= 0 {
		return Split{}, fmt.Errorf("loan term must be positive, got %d years", terms.TermYears)
	}

	annualRate := terms.AnnualRate(yearOffset)
	monthlyRate := mathutil.MonthlyRate(annualRate)

	// The interest-only part never amortizes; only the rest goes through the
	// scheme formula.
	var carveOutInterest float64
	if terms.InterestOnlyPercentage > 0 {
		carveOutRate := monthlyRate
		if terms.InterestOnlyRate > 0 {
			carveOutRate = mathutil.MonthlyRate(terms.InterestOnlyRate)
		}
		share := mathutil.PercentToDecimal(terms.InterestOnlyPercentage)
		carveOutInterest = CalculateInterestPayment(share*remaining, carveOutRate)
		original *= 1 - share
		remaining *= 1 - share
	}

	switch terms.Scheme {
	case Linear:
		return Split{
			Principal:             original / float64(terms.TermMonths()),
			DeductibleInterest:    CalculateInterestPayment(remaining, monthlyRate),
			NonDeductibleInterest: carveOutInterest,
		}, nil
	case Annuity:
		payment := CalculateMonthlyPayment(original, monthlyRate, terms.TermMonths())
		interest := CalculateInterestPayment(remaining, monthlyRate)
		return Split{
			Principal:             payment - interest,
			DeductibleInterest:    interest,
			NonDeductibleInterest: carveOutInterest,
		}, nil
	case InterestOnly:
		return Split{
			NonDeductibleInterest: carveOutInterest + CalculateInterestPayment(remaining, monthlyRate),
		}, nil
	default:
		return Split{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, terms.Scheme)
	}
}
