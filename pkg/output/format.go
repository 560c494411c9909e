// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable summary of the projection: the
// purchase and mortgage overview, one row per loan year and the totals after
// the full term.
func PrettyFormat(w io.Writer, projection *forecast.Projection) error {
	p := message.NewPrinter(language.English)

	sections := []string{
		RenderTitle("Mortgage forecast"),
		RenderTable(purchaseTable(projection)),
		RenderTable(mortgageTable(projection)),
		RenderTable(yearTable(p, projection)),
		RenderTable(totalsTable(projection)),
	}

	_, err := io.WriteString(w, strings.Join(sections, "\n")+"\n")
	return err
}

// CsvFormat outputs the monthly records in comma-separated value format.
func CsvFormat(w io.Writer, records []forecast.MonthRecord) error {
	return WriteCSV(w, records)
}

func purchaseTable(projection *forecast.Projection) Table {
	purchase := projection.Assumptions.Purchase
	costs := purchase.Costs
	acquisition := projection.Acquisition

	return Table{
		Title: fmt.Sprintf("Purchase (%d)", purchase.Year),
		Rows: [][]string{
			{"Price", format.Currency(purchase.Price)},
			{"Transfer tax", format.Currency(acquisition.TransferTax)},
			{"Notary", format.Currency(costs.Notary)},
			{"Broker", format.Currency(costs.Broker)},
			{"Other costs", format.Currency(costs.Other)},
			{"Non-deductible costs", format.Currency(acquisition.NonDeductible)},
			{separatorRow},
			{"Mortgage fees", format.Currency(costs.MortgageFees)},
			{"Valuation", format.Currency(costs.Valuation)},
			{"Building survey", format.Currency(costs.BuildingSurvey)},
			{"Other deductible costs", format.Currency(costs.OtherDeductible)},
			{"Deductible costs", format.Currency(acquisition.Deductible)},
			{"Tax benefit", format.Currency(-acquisition.TaxBenefit)},
			{separatorRow},
			{"Gross cost", format.Currency(acquisition.Gross)},
			{"Net cost", format.Currency(acquisition.Net)},
			{"Own contribution", format.Currency(-purchase.OwnContribution)},
			{"Loan amount", format.Currency(acquisition.LoanAmount)},
			{"One-time net cost", format.Currency(acquisition.OneTimeNetCost)},
		},
	}
}

func mortgageTable(projection *forecast.Projection) Table {
	terms := projection.Terms
	rows := [][]string{
		{"Scheme", terms.Scheme.String()},
		{"Term", fmt.Sprintf("%d years", terms.TermYears)},
		{"Fixed rate period", fmt.Sprintf("%d years", terms.FixedRateYears)},
		{"Initial rate", format.Percentage(terms.InitialRate)},
		{"Rate after fixed period", format.Percentage(terms.RateAfterFixedPeriod)},
	}
	if terms.InterestOnlyPercentage > 0 {
		interestOnlyRate := "rate in force"
		if terms.InterestOnlyRate > 0 {
			interestOnlyRate = format.Percentage(terms.InterestOnlyRate)
		}
		rows = append(rows,
			[]string{"Interest-only share", format.Percentage(terms.InterestOnlyPercentage)},
			[]string{"Interest-only rate", interestOnlyRate},
		)
	}
	if len(projection.Records) > 0 {
		first := projection.Records[0]
		rows = append(rows,
			[]string{separatorRow},
			[]string{"First gross payment", format.Currency(first.Principal + first.Interest)},
			[]string{"First net outlay", format.Currency(first.Outlay)},
			[]string{"First rent", format.Currency(first.Rent)},
		)
	}
	return Table{Title: "Mortgage", Rows: rows}
}

func yearTable(p *message.Printer, projection *forecast.Projection) Table {
	amount := func(v float64) string {
		return p.Sprintf("%.0f", v)
	}

	t := Table{
		Title: "Per year",
		Headers: []string{
			"Year", "Principal", "Interest", "Deduction", "Levy", "Net interest",
			"Outlay", "Rent", "Balance", "Vs always renting",
		},
	}
	for _, s := range forecast.YearSummaries(projection.Records) {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(projection.Assumptions.Purchase.Year + s.Year),
			amount(s.Principal),
			amount(s.Interest),
			amount(s.InterestDeduction),
			amount(s.OwnershipLevy),
			amount(s.NetInterest),
			amount(s.Outlay),
			amount(s.Rent),
			amount(s.Final.RemainingBalance),
			amount(s.Final.AdvantageVsAlwaysRenting),
		})
	}
	return t
}

func totalsTable(projection *forecast.Projection) Table {
	totals := forecast.Summarize(projection.Records)
	final := totals.Final

	return Table{
		Title: fmt.Sprintf("After %d years", projection.Terms.TermYears),
		Rows: [][]string{
			{"Total principal", format.Currency(totals.Principal)},
			{"Total interest", format.Currency(totals.Interest)},
			{"Total interest deduction", format.Currency(totals.InterestDeduction)},
			{"Total ownership levy", format.Currency(totals.OwnershipLevy)},
			{"Total net interest", format.Currency(totals.NetInterest)},
			{"Total tax disadvantage", format.Currency(totals.TaxDisadvantage)},
			{"Total maintenance", format.Currency(totals.Maintenance)},
			{"Total rent avoided", format.Currency(totals.Rent)},
			{separatorRow},
			{"Remaining balance", format.Currency(final.RemainingBalance)},
			{"Assessed value", format.Currency(final.AssessedValue)},
			{"Savings balance", format.Currency(final.SavingsBalance)},
			{"Advantage vs always renting", format.Currency(final.AdvantageVsAlwaysRenting)},
			{"Advantage vs renting for now", format.Currency(final.AdvantageVsRentingForNow)},
		},
	}
}
