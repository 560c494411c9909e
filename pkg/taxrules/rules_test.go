package taxrules

import (
	"math"
	"testing"
)

func defaultRules(purchaseYear int, topRate float64) Rules {
	return Rules{
		PurchaseYear:   purchaseYear,
		TopRatePercent: topRate,
		Deduction:      MustRateTable(DefaultDeductionRates()),
		Levy:           MustRateTable(DefaultLevyRates()),
		Transition:     DefaultTransition(),
	}
}

func TestRateTableLookup(t *testing.T) {
	table := MustRateTable([]YearRate{
		{Year: 2023, Rate: 37.1},
		{Year: 2019, Rate: 49},
		{Year: 2021, Rate: 43},
	})

	tests := []struct {
		name     string
		year     int
		expected float64
	}{
		{"First entry", 2019, 49},
		{"Gap uses previous entry", 2020, 49},
		{"Exact middle entry", 2021, 43},
		{"Last entry", 2023, 37.1},
		{"Beyond last entry uses floor", 2024, 37.1},
		{"Far beyond last entry uses floor", 2080, 37.1},
		{"Before first entry", 2010, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Lookup(tt.year); got != tt.expected {
				t.Errorf("Lookup(%d) = %v, expected %v", tt.year, got, tt.expected)
			}
		})
	}

	if table.Floor() != 37.1 {
		t.Errorf("Floor() = %v, expected 37.1", table.Floor())
	}
	if table.FirstYear() != 2019 || table.LastYear() != 2023 {
		t.Errorf("unexpected year range %d-%d", table.FirstYear(), table.LastYear())
	}
}

func TestRateTableFloorMatchesLastEntry(t *testing.T) {
	for _, entries := range [][]YearRate{DefaultDeductionRates(), DefaultLevyRates()} {
		table := MustRateTable(entries)
		last := entries[len(entries)-1]
		for year := last.Year + 1; year < last.Year+40; year++ {
			if got := table.Lookup(year); got != last.Rate {
				t.Fatalf("Lookup(%d) = %v, expected floor %v", year, got, last.Rate)
			}
		}
	}
}

func TestNewRateTableErrors(t *testing.T) {
	if _, err := NewRateTable(nil); err == nil {
		t.Error("expected error for empty table")
	}
	if _, err := NewRateTable([]YearRate{{Year: 2020, Rate: 1}, {Year: 2020, Rate: 2}}); err == nil {
		t.Error("expected error for duplicate year")
	}
}

func TestRateTableEntriesIsCopy(t *testing.T) {
	table := MustRateTable(DefaultLevyRates())
	entries := table.Entries()
	entries[0].Rate = 99
	if table.Lookup(2019) != 0.65 {
		t.Error("modifying Entries() result must not change the table")
	}
}

func TestInterestDeduction(t *testing.T) {
	tests := []struct {
		name         string
		purchaseYear int
		topRate      float64
		interest     float64
		yearOffset   int
		expected     float64
	}{
		{"2021 scheduled rate", 2021, 49.5, 1000, 0, 430},
		{"2022 scheduled rate", 2021, 49.5, 1000, 1, 400},
		{"Floor after table", 2021, 49.5, 1000, 10, 371},
		{"Capped at own top rate", 2019, 37.1, 1000, 0, 371},
		{"Low bracket caps every year", 2021, 30, 1000, 5, 300},
		{"Zero interest", 2021, 49.5, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := defaultRules(tt.purchaseYear, tt.topRate)
			got := rules.InterestDeduction(tt.interest, tt.yearOffset)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("InterestDeduction() = %.4f, expected %.4f", got, tt.expected)
			}
		})
	}
}

func TestOwnershipLevy(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		topRate    float64
		yearOffset int
		expected   float64
	}{
		// 320000 * 0.5% / 12 * 49.5%
		{"Purchase year", 320000, 49.5, 0, 66},
		// 320000 * 0.45% / 12 * 49.5%
		{"Floor rate", 320000, 49.5, 3, 59.4},
		{"No tax bracket", 320000, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := defaultRules(2021, tt.topRate)
			got := rules.OwnershipLevy(tt.value, tt.yearOffset)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("OwnershipLevy() = %.4f, expected %.4f", got, tt.expected)
			}
		})
	}
}

func TestNetEffect(t *testing.T) {
	tests := []struct {
		name                 string
		purchaseYear         int
		yearOffset           int
		deduction            float64
		levy                 float64
		expectedAdvantage    float64
		expectedDisadvantage float64
	}{
		{"Deduction exceeds levy", 2021, 0, 300, 60, 240, 0},
		{"Deduction equals levy", 2021, 0, 60, 60, 0, 0},
		{"Before transition", 2015, 0, 10, 60, 0, 0},
		{"Transition start year", 2019, 0, 10, 60, 0, 0},
		{"One year into transition", 2019, 1, 10, 70, 0, 2},
		{"Halfway through transition", 2019, 15, 10, 70, 0, 30},
		{"Transition end year", 2019, 30, 10, 70, 0, 60},
		{"After transition", 2021, 29, 10, 70, 0, 60},
		{"Long after transition", 2021, 60, 10, 70, 0, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := defaultRules(tt.purchaseYear, 49.5)
			advantage, disadvantage := rules.NetEffect(tt.deduction, tt.levy, tt.yearOffset)
			if math.Abs(advantage-tt.expectedAdvantage) > 1e-9 {
				t.Errorf("advantage = %.4f, expected %.4f", advantage, tt.expectedAdvantage)
			}
			if math.Abs(disadvantage-tt.expectedDisadvantage) > 1e-9 {
				t.Errorf("disadvantage = %.4f, expected %.4f", disadvantage, tt.expectedDisadvantage)
			}
			if advantage*disadvantage != 0 {
				t.Errorf("advantage %.4f and disadvantage %.4f are both non-zero", advantage, disadvantage)
			}
		})
	}
}

func TestNetEffectExactBoundaries(t *testing.T) {
	rules := defaultRules(2019, 49.5)
	deduction, levy := 12.5, 87.25

	advantage, disadvantage := rules.NetEffect(deduction, levy, 0)
	if advantage != 0 || disadvantage != 0 {
		t.Errorf("2019: got (%v, %v), expected exactly (0, 0)", advantage, disadvantage)
	}

	advantage, disadvantage = rules.NetEffect(deduction, levy, 31)
	if advantage != 0 || disadvantage != levy-deduction {
		t.Errorf("2050: got (%v, %v), expected exactly (0, %v)", advantage, disadvantage, levy-deduction)
	}
}

func TestRulesValidate(t *testing.T) {
	rules := defaultRules(2021, 49.5)
	if err := rules.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	rules.TopRatePercent = 120
	if err := rules.Validate(); err == nil {
		t.Error("expected error for top rate above 100%")
	}

	rules = defaultRules(2021, 49.5)
	rules.Transition = Transition{StartYear: 2030, EndYear: 2030}
	if err := rules.Validate(); err == nil {
		t.Error("expected error for empty transition window")
	}
}
