// Package taxrules implements the year-dependent tax treatment of an
// owner-occupied home: the mortgage interest deduction, the imputed ownership
// levy and the phased transition that makes an excess levy payable.
package taxrules

import (
	"fmt"
	"sort"
)

// YearRate is one entry of a rate table: the percentage that applies from
// Year onwards until the next entry.
type YearRate struct {
	Year int     `yaml:"year" json:"year"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// RateTable is an ordered mapping from calendar year to a percentage. Years
// past the last entry use the last entry's rate.
type RateTable struct {
	entries []YearRate
}

// NewRateTable builds a table from unordered entries. Duplicate years are
// rejected.
func NewRateTable(entries []YearRate) (RateTable, error) {
	if len(entries) == 0 {
		return RateTable{}, fmt.Errorf("rate table needs at least one entry")
	}

	sorted := make([]YearRate, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Year == sorted[i-1].Year {
			return RateTable{}, fmt.Errorf("rate table has duplicate year %d", sorted[i].Year)
		}
	}
	return RateTable{entries: sorted}, nil
}

// MustRateTable is NewRateTable for statically known tables; it panics on error.
func MustRateTable(entries []YearRate) RateTable {
	table, err := NewRateTable(entries)
	if err != nil {
		panic(err)
	}
	return table
}

// Lookup returns the percentage for the calendar year. Years between entries
// use the latest entry not after the year, years before the first entry use
// the first entry and years after the last entry use the floor rate.
func (t RateTable) Lookup(year int) float64 {
	if len(t.entries) == 0 {
		return 0
	}
	idx := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Year > year })
	if idx == 0 {
		return t.entries[0].Rate
	}
	return t.entries[idx-1].Rate
}

// Floor returns the rate used for every year past the last entry.
func (t RateTable) Floor() float64 {
	if len(t.entries) == 0 {
		return 0
	}
	return t.entries[len(t.entries)-1].Rate
}

// FirstYear returns the earliest tabulated year.
func (t RateTable) FirstYear() int {
	if len(t.entries) == 0 {
		return 0
	}
	return t.entries[0].Year
}

// LastYear returns the latest tabulated year.
func (t RateTable) LastYear() int {
	if len(t.entries) == 0 {
		return 0
	}
	return t.entries[len(t.entries)-1].Year
}

// Entries returns a copy of the ordered entries.
func (t RateTable) Entries() []YearRate {
	out := make([]YearRate, len(t.entries))
	copy(out, t.entries)
	return out
}

// DefaultDeductionRates is the maximum interest deduction percentage per year.
func DefaultDeductionRates() []YearRate {
	return []YearRate{
		{Year: 2019, Rate: 49},
		{Year: 2020, Rate: 46},
		{Year: 2021, Rate: 43},
		{Year: 2022, Rate: 40},
		{Year: 2023, Rate: 37.1},
	}
}

// DefaultLevyRates is the imputed rent percentage of the assessed value per year.
func DefaultLevyRates() []YearRate {
	return []YearRate{
		{Year: 2019, Rate: 0.65},
		{Year: 2020, Rate: 0.60},
		{Year: 2021, Rate: 0.50},
		{Year: 2022, Rate: 0.50},
		{Year: 2023, Rate: 0.45},
	}
}
