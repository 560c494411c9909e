package forecast

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MonthRecord holds every computed value for one month. Records are created
// in chronological order and never modified afterwards.
type MonthRecord struct {
	Year                  int     `json:"year"`
	Month                 int     `json:"month"`
	Principal             float64 `json:"principal"`
	RemainingBalance      float64 `json:"remainingBalance"`
	Interest              float64 `json:"interest"`
	DeductibleInterest    float64 `json:"deductibleInterest"`
	NonDeductibleInterest float64 `json:"nonDeductibleInterest"`
	InterestDeduction     float64 `json:"interestDeduction"`
	OwnershipLevy         float64 `json:"ownershipLevy"`
	TaxAdvantage          float64 `json:"taxAdvantage"`
	TaxDisadvantage       float64 `json:"taxDisadvantage"`
	NetInterest           float64 `json:"netInterest"`
	AssessedValue         float64 `json:"assessedValue"`
	Maintenance           float64 `json:"maintenance"`
	SavingsContribution   float64 `json:"savingsContribution"`
	Outlay                float64 `json:"outlay"`
	Rent                  float64 `json:"rent"`
	SavingsBalance        float64 `json:"savingsBalance"`
	// AdvantageVsAlwaysRenting compares buying now with renting forever and
	// includes the one-time purchase costs.
	AdvantageVsAlwaysRenting float64 `json:"advantageVsAlwaysRenting"`
	// AdvantageVsRentingForNow compares buying now with buying later, so the
	// purchase costs are paid either way.
	AdvantageVsRentingForNow float64 `json:"advantageVsRentingForNow"`
}

// Field names one exported value of a MonthRecord.
type Field struct {
	Name  string
	Value func(MonthRecord) float64
}

// Label turns a field name such as "tax_advantage" into "Tax advantage".
func (f Field) Label() string {
	words := strings.SplitN(strings.ReplaceAll(f.Name, "_", " "), " ", 2)
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}

// MonthlyFields are the values that are paid or received in a single month.
var MonthlyFields = []Field{
	{"principal", func(r MonthRecord) float64 { return r.Principal }},
	{"interest", func(r MonthRecord) float64 { return r.Interest }},
	{"interest_deduction", func(r MonthRecord) float64 { return r.InterestDeduction }},
	{"ownership_levy", func(r MonthRecord) float64 { return r.OwnershipLevy }},
	{"tax_advantage", func(r MonthRecord) float64 { return r.TaxAdvantage }},
	{"net_interest", func(r MonthRecord) float64 { return r.NetInterest }},
	{"tax_disadvantage", func(r MonthRecord) float64 { return r.TaxDisadvantage }},
	{"maintenance", func(r MonthRecord) float64 { return r.Maintenance }},
	{"savings_contribution", func(r MonthRecord) float64 { return r.SavingsContribution }},
	{"outlay", func(r MonthRecord) float64 { return r.Outlay }},
	{"rent", func(r MonthRecord) float64 { return r.Rent }},
}

// TotalFields are balances and running totals.
var TotalFields = []Field{
	{"remaining_balance", func(r MonthRecord) float64 { return r.RemainingBalance }},
	{"advantage_vs_always_renting", func(r MonthRecord) float64 { return r.AdvantageVsAlwaysRenting }},
	{"advantage_vs_renting_for_now", func(r MonthRecord) float64 { return r.AdvantageVsRentingForNow }},
	{"assessed_value", func(r MonthRecord) float64 { return r.AssessedValue }},
	{"savings_balance", func(r MonthRecord) float64 { return r.SavingsBalance }},
}

// MonthlyStackFields make up the monthly outlay in the chart.
var MonthlyStackFields = []Field{
	MonthlyFields[0], // principal
	MonthlyFields[5], // net interest
	MonthlyFields[6], // tax disadvantage
	MonthlyFields[7], // maintenance
	MonthlyFields[8], // savings contribution
}

// MonthlyLineFields are drawn on top of the stacked monthly outlay.
var MonthlyLineFields = []Field{
	MonthlyFields[10], // rent
}

// ExportFields returns the monthly fields followed by the total fields.
func ExportFields() []Field {
	fields := make([]Field, 0, len(MonthlyFields)+len(TotalFields))
	fields = append(fields, MonthlyFields...)
	return append(fields, TotalFields...)
}
