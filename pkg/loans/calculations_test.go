package loans

import (
	"errors"
	"math"
	"testing"
)

func referenceTerms(scheme Scheme) Terms {
	return Terms{
		Scheme:               scheme,
		InitialRate:          4.75,
		RateAfterFixedPeriod: 4.75,
		FixedRateYears:       30,
		TermYears:            30,
	}
}

// runSchedule amortizes the full term and returns every split plus the final
// balance.
func runSchedule(t *testing.T, terms Terms, original float64) ([]Split, float64) {
	t.Helper()
	remaining := original
	splits := make([]Split, 0, terms.TermMonths())
	for year := 0; year < terms.TermYears; year++ {
		for month := 0; month < 12; month++ {
			split, err := Amortize(terms, remaining, original, year)
			if err != nil {
				t.Fatalf("Amortize() error = %v", err)
			}
			remaining -= split.Principal
			splits = append(splits, split)
		}
	}
	return splits, remaining
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected Scheme
		wantErr  bool
	}{
		{"linear", Linear, false},
		{"Annuity", Annuity, false},
		{" interest-only ", InterestOnly, false},
		{"interest_only", InterestOnly, false},
		{"balloon", SchemeUnknown, true},
		{"", SchemeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheme(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedScheme) {
					t.Errorf("ParseScheme(%q) error = %v, expected ErrUnsupportedScheme", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScheme(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseScheme(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			if roundTrip, err := ParseScheme(got.String()); err != nil || roundTrip != got {
				t.Errorf("ParseScheme(%q.String()) = %v, %v", got, roundTrip, err)
			}
		})
	}
}

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		monthlyRate   float64
		termMonths    int
		expectedRange []float64
	}{
		{"Reference annuity", 115000, math.Pow(1.0475, 1.0/12) - 1, 360, []float64{592.85, 592.96}},
		{"Zero interest", 12000, 0, 60, []float64{199.99, 200.01}},
		{"Zero term", 12000, 0.01, 0, []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.monthlyRate, tt.termMonths)
			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestLinearReferenceSchedule(t *testing.T) {
	splits, remaining := runSchedule(t, referenceTerms(Linear), 115000)

	totalInterest := 0.0
	for i, split := range splits {
		if math.Abs(split.Principal-319.44) > 0.1 {
			t.Errorf("month %d: principal = %.4f, expected 319.44", i, split.Principal)
		}
		if split.Principal != splits[0].Principal {
			t.Errorf("month %d: principal %.6f differs from first month %.6f", i, split.Principal, splits[0].Principal)
		}
		if split.NonDeductibleInterest != 0 {
			t.Errorf("month %d: unexpected non-deductible interest %.4f", i, split.NonDeductibleInterest)
		}
		totalInterest += split.Interest()
	}

	if math.Abs(remaining) > 0.1 {
		t.Errorf("final balance = %.4f, expected 0", remaining)
	}
	if math.Abs(totalInterest-80428) > 1 {
		t.Errorf("total interest = %.2f, expected 80428", totalInterest)
	}
}

func TestAnnuityReferenceSchedule(t *testing.T) {
	splits, remaining := runSchedule(t, referenceTerms(Annuity), 115000)

	totalInterest := 0.0
	for i, split := range splits {
		payment := split.Principal + split.Interest()
		if math.Abs(payment-592.90) > 0.1 {
			t.Errorf("month %d: payment = %.4f, expected 592.90", i, payment)
		}
		totalInterest += split.Interest()
	}

	if math.Abs(remaining) > 0.1 {
		t.Errorf("final balance = %.4f, expected 0", remaining)
	}
	if math.Abs(totalInterest-98464) > 1 {
		t.Errorf("total interest = %.2f, expected 98464", totalInterest)
	}
}

func TestAnnuityZeroRate(t *testing.T) {
	terms := referenceTerms(Annuity)
	terms.InitialRate = 0
	terms.RateAfterFixedPeriod = 0

	splits, remaining := runSchedule(t, terms, 120000)
	for i, split := range splits {
		if math.IsNaN(split.Principal) || math.IsInf(split.Principal, 0) {
			t.Fatalf("month %d: principal is not finite", i)
		}
		if math.Abs(split.Principal-120000.0/360) > 1e-9 {
			t.Errorf("month %d: principal = %.4f, expected %.4f", i, split.Principal, 120000.0/360)
		}
		if split.Interest() != 0 {
			t.Errorf("month %d: interest = %.4f, expected 0", i, split.Interest())
		}
	}
	if math.Abs(remaining) > 0.1 {
		t.Errorf("final balance = %.4f, expected 0", remaining)
	}
}

func TestInterestOnlySchedule(t *testing.T) {
	original := 200000.0
	splits, remaining := runSchedule(t, referenceTerms(InterestOnly), original)

	expectedInterest := original * (math.Pow(1.0475, 1.0/12) - 1)
	for i, split := range splits {
		if split.Principal != 0 {
			t.Errorf("month %d: principal = %.4f, expected 0", i, split.Principal)
		}
		if split.DeductibleInterest != 0 {
			t.Errorf("month %d: deductible interest = %.4f, expected 0", i, split.DeductibleInterest)
		}
		if math.Abs(split.NonDeductibleInterest-expectedInterest) > 1e-6 {
			t.Errorf("month %d: interest = %.4f, expected %.4f", i, split.NonDeductibleInterest, expectedInterest)
		}
	}
	if remaining != original {
		t.Errorf("final balance = %.2f, expected unchanged %.2f", remaining, original)
	}
}

func TestInterestOnlyCarveOut(t *testing.T) {
	terms := referenceTerms(Linear)
	terms.InterestOnlyPercentage = 25
	terms.InterestOnlyRate = 6

	original := 100000.0
	split, err := Amortize(terms, original, original, 0)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}

	amortizingRate := math.Pow(1.0475, 1.0/12) - 1
	carveOutRate := math.Pow(1.06, 1.0/12) - 1

	if math.Abs(split.Principal-75000.0/360) > 1e-9 {
		t.Errorf("principal = %.4f, expected %.4f", split.Principal, 75000.0/360)
	}
	if math.Abs(split.DeductibleInterest-75000*amortizingRate) > 1e-9 {
		t.Errorf("deductible interest = %.4f, expected %.4f", split.DeductibleInterest, 75000*amortizingRate)
	}
	if math.Abs(split.NonDeductibleInterest-25000*carveOutRate) > 1e-9 {
		t.Errorf("non-deductible interest = %.4f, expected %.4f", split.NonDeductibleInterest, 25000*carveOutRate)
	}

	// Without a dedicated rate the carve-out uses the amortizing rate.
	terms.InterestOnlyRate = 0
	split, err = Amortize(terms, original, original, 0)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}
	if math.Abs(split.NonDeductibleInterest-25000*amortizingRate) > 1e-9 {
		t.Errorf("non-deductible interest = %.4f, expected %.4f", split.NonDeductibleInterest, 25000*amortizingRate)
	}
}

func TestInterestOnlyCarveOutLeavesBalance(t *testing.T) {
	terms := referenceTerms(Linear)
	terms.InterestOnlyPercentage = 40

	_, remaining := runSchedule(t, terms, 100000)
	if math.Abs(remaining-40000) > 0.1 {
		t.Errorf("final balance = %.4f, expected the interest-only part 40000", remaining)
	}
}

func TestRateAfterFixedPeriod(t *testing.T) {
	terms := Terms{
		Scheme:               Linear,
		InitialRate:          2,
		RateAfterFixedPeriod: 5,
		FixedRateYears:       10,
		TermYears:            30,
	}

	tests := []struct {
		yearOffset int
		expected   float64
	}{
		{0, 2},
		{9, 2},
		{10, 5},
		{29, 5},
	}
	for _, tt := range tests {
		if got := terms.AnnualRate(tt.yearOffset); got != tt.expected {
			t.Errorf("AnnualRate(%d) = %v, expected %v", tt.yearOffset, got, tt.expected)
		}
	}

	before, _ := Amortize(terms, 100000, 100000, 9)
	after, _ := Amortize(terms, 100000, 100000, 10)
	if after.DeductibleInterest <= before.DeductibleInterest {
		t.Errorf("interest after the fixed period (%.2f) should exceed interest before (%.2f)",
			after.DeductibleInterest, before.DeductibleInterest)
	}
}

func TestAmortizeErrors(t *testing.T) {
	terms := referenceTerms(SchemeUnknown)
	if _, err := Amortize(terms, 1000, 1000, 0); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Amortize() error = %v, expected ErrUnsupportedScheme", err)
	}

	terms = referenceTerms(Scheme(42))
	if _, err := Amortize(terms, 1000, 1000, 0); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Amortize() error = %v, expected ErrUnsupportedScheme", err)
	}

	terms = referenceTerms(Linear)
	terms.TermYears = 0
	if _, err := Amortize(terms, 1000, 1000, 0); err == nil {
		t.Error("expected error for zero term")
	}
}
