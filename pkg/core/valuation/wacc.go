package valuation

import "pitchly/pkg/core/quote"

// WACCInput parameters for building a discount rate from first principles.
type WACCInput struct {
	UnleveredBeta     float64 `json:"unleveredBeta"`
	RiskFreeRate      float64 `json:"riskFreeRate"`
	MarketRiskPremium float64 `json:"marketRiskPremium"`
	PreTaxCostOfDebt  float64 `json:"preTaxCostOfDebt"`
	TaxRate           float64 `json:"taxRate"`
	DebtToEquityRatio float64 `json:"debtToEquityRatio"` // target leverage
}

// WACCResult is the component breakdown behind a discount rate. The
// dashboard shows it next to the WACC slider as a cross-check on whatever
// the user dials in.
type WACCResult struct {
	LeveredBeta  float64 `json:"leveredBeta"`
	CostOfEquity float64 `json:"costOfEquity"`
	CostOfDebt   float64 `json:"costOfDebt"` // after-tax
	WACC         float64 `json:"wacc"`
	WeightDebt   float64 `json:"weightDebt"`
	WeightEquity float64 `json:"weightEquity"`
}

// CalculateWACC computes the weighted average cost of capital using CAPM
// with the Hamada re-levering of beta.
func CalculateWACC(input WACCInput) WACCResult {
	// BetaL = BetaU * (1 + (1-t)*(D/E))
	leveredBeta := input.UnleveredBeta * (1 + (1-input.TaxRate)*input.DebtToEquityRatio)

	// Ke = Rf + BetaL * ERP
	ke := input.RiskFreeRate + leveredBeta*input.MarketRiskPremium

	kd := input.PreTaxCostOfDebt * (1 - input.TaxRate)

	wd := input.DebtToEquityRatio / (1 + input.DebtToEquityRatio)
	we := 1.0 / (1 + input.DebtToEquityRatio)

	return WACCResult{
		LeveredBeta:  leveredBeta,
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WACC:         (ke * we) + (kd * wd),
		WeightDebt:   wd,
		WeightEquity: we,
	}
}

// Sector capital-structure presets for the reference breakdown. Coarse
// textbook figures; the slider value, not this, drives the model.
var sectorWACCPresets = map[quote.Domain]struct {
	beta     float64
	leverage float64
}{
	quote.DomainTechnology:     {beta: 1.15, leverage: 0.15},
	quote.DomainConsumerRetail: {beta: 0.90, leverage: 0.45},
	quote.DomainFinancials:     {beta: 1.05, leverage: 0.90},
}

const (
	referenceRiskFreeRate     = 0.042
	referenceMarketPremium    = 0.055
	referencePreTaxCostOfDebt = 0.058
)

// ReferenceWACC builds the cross-check discount rate for a quote from its
// sector's capital-structure preset and resolved tax rate.
func ReferenceWACC(q *quote.Quote) WACCResult {
	preset, ok := sectorWACCPresets[q.Domain]
	if !ok {
		preset = sectorWACCPresets[quote.DomainTechnology]
	}
	return CalculateWACC(WACCInput{
		UnleveredBeta:     preset.beta,
		RiskFreeRate:      referenceRiskFreeRate,
		MarketRiskPremium: referenceMarketPremium,
		PreTaxCostOfDebt:  referencePreTaxCostOfDebt,
		TaxRate:           q.TaxRate,
		DebtToEquityRatio: preset.leverage,
	})
}
