package forecast

// Totals are reductions over a full record sequence.
type Totals struct {
	Months            int
	Principal         float64
	Interest          float64
	InterestDeduction float64
	OwnershipLevy     float64
	TaxAdvantage      float64
	TaxDisadvantage   float64
	NetInterest       float64
	Maintenance       float64
	Outlay            float64
	Rent              float64
	// Final holds the last record, or the zero record for an empty sequence.
	Final MonthRecord
}

// Summarize reduces the records to totals.
func Summarize(records []MonthRecord) Totals {
	var totals Totals
	for _, r := range records {
		totals.add(r)
	}
	if len(records) > 0 {
		totals.Final = records[len(records)-1]
	}
	return totals
}

func (t *Totals) add(r MonthRecord) {
	t.Months++
	t.Principal += r.Principal
	t.Interest += r.Interest
	t.InterestDeduction += r.InterestDeduction
	t.OwnershipLevy += r.OwnershipLevy
	t.TaxAdvantage += r.TaxAdvantage
	t.TaxDisadvantage += r.TaxDisadvantage
	t.NetInterest += r.NetInterest
	t.Maintenance += r.Maintenance
	t.Outlay += r.Outlay
	t.Rent += r.Rent
}

// YearSummary is the reduction of the twelve records of one loan year.
type YearSummary struct {
	Year int
	Totals
}

// YearSummaries groups the records by loan year, in order.
func YearSummaries(records []MonthRecord) []YearSummary {
	var summaries []YearSummary
	for _, r := range records {
		if len(summaries) == 0 || summaries[len(summaries)-1].Year != r.Year {
			summaries = append(summaries, YearSummary{Year: r.Year})
		}
		current := &summaries[len(summaries)-1]
		current.add(r)
		current.Final = r
	}
	return summaries
}
