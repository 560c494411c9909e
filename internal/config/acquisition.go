package config

import (
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
)

// Acquisition holds the one-time purchase figures derived from the
// assumptions.
type Acquisition struct {
	TransferTax   float64
	NonDeductible float64
	Deductible    float64
	// TaxBenefit is the refund on the deductible costs at the top rate.
	TaxBenefit float64
	Gross      float64
	Net        float64
	// OneTimeNetCost is what buying costs on top of the price itself.
	OneTimeNetCost float64
	LoanAmount     float64
}

// Acquisition derives the purchase cost breakdown and the loan amount.
// The loan covers the gross cost minus the own contribution.
func (a Assumptions) Acquisition() Acquisition {
	costs := a.Purchase.Costs
	transferTax := mathutil.ApplyPercentage(a.Purchase.Price, costs.TransferTaxPercentage)
	nonDeductible := costs.Notary + costs.Broker + transferTax + costs.Other
	deductible := costs.MortgageFees + costs.Valuation + costs.BuildingSurvey + costs.OtherDeductible
	benefit := mathutil.ApplyPercentage(deductible, a.Tax.TopRate)
	gross := a.Purchase.Price + nonDeductible + deductible

	return Acquisition{
		TransferTax:    transferTax,
		NonDeductible:  nonDeductible,
		Deductible:     deductible,
		TaxBenefit:     benefit,
		Gross:          gross,
		Net:            gross - benefit,
		OneTimeNetCost: nonDeductible + deductible - benefit,
		LoanAmount:     gross - a.Purchase.OwnContribution,
	}
}
