package assumption

import (
	"math"

	"pitchly/pkg/core/quote"
)

// DefaultDCF returns the starting assumption set for a quote. Financials
// seed the DDM variant from the reported ROE; everything else gets the
// standard FCFF starting point with the quote's resolved tax rate.
func DefaultDCF(q *quote.Quote) DCF {
	if q.Domain == quote.DomainFinancials {
		roe := 0.12
		if quote.Positive(q.ROE) {
			roe = *q.ROE
		}
		return DCF{
			ROE:              roe,
			ReinvestmentRate: 0.60, // retention ratio for banks
			CostOfEquity:     0.10,
			TerminalGrowth:   0.02,
		}
	}
	taxRate := q.TaxRate
	if taxRate == 0 {
		taxRate = 0.21
	}
	return DCF{
		RevenueGrowth:    0.15,
		OperatingMargin:  0.18,
		TaxRate:          taxRate,
		ReinvestmentRate: 0.30,
		WACC:             0.095,
		TerminalGrowth:   0.025,
	}
}

// DCFInputs materializes the slider set for a DCF assumption set. The map
// keys match the JSON field names the dashboard binds to.
func DCFInputs(q *quote.Quote, d DCF) map[string]Input {
	if q.Domain == quote.DomainFinancials {
		return map[string]Input{
			"roe":              {Label: "Return on Equity (ROE)", Value: d.ROE, Min: 0.05, Max: 0.25, Step: 0.005},
			"reinvestmentRate": {Label: "Retention Ratio (1 - Payout)", Value: d.ReinvestmentRate, Min: 0.2, Max: 0.8, Step: 0.01},
			"costOfEquity":     {Label: "Cost of Equity", Value: d.CostOfEquity, Min: 0.07, Max: 0.15, Step: 0.001},
			"terminalGrowth":   {Label: "Terminal Growth", Value: d.TerminalGrowth, Min: 0.01, Max: 0.04, Step: 0.001},
		}
	}
	return map[string]Input{
		"revenueGrowth":    {Label: "Revenue Growth", Value: d.RevenueGrowth, Min: 0, Max: 0.5, Step: 0.005},
		"operatingMargin":  {Label: "Operating Margin", Value: d.OperatingMargin, Min: 0, Max: 0.4, Step: 0.005},
		"taxRate":          {Label: "Tax Rate" + q.TaxRateSource, Value: d.TaxRate, Min: 0.1, Max: 0.4, Step: 0.005},
		"reinvestmentRate": {Label: "Reinvestment Rate", Value: d.ReinvestmentRate, Min: 0, Max: 1, Step: 0.01},
		"wacc":             {Label: "WACC", Value: d.WACC, Min: 0.05, Max: 0.15, Step: 0.001},
		"terminalGrowth":   {Label: "Terminal Growth", Value: d.TerminalGrowth, Min: 0.01, Max: 0.05, Step: 0.001},
	}
}

// DefaultLBO returns the starting buyout assumptions for a quote and
// scenario. Purchase price anchors to market cap; the exit multiple falls
// back to a haircut P/E when nothing better is known.
func DefaultLBO(q *quote.Quote, scenarioID string) LBO {
	exitMultiple := 15.0
	if quote.Positive(q.PERatio) {
		exitMultiple = math.Min(25, math.Max(8, *q.PERatio*0.8))
	}
	interestRate := q.InterestRate
	if interestRate == 0 {
		interestRate = quote.DefaultInterestRate
	}
	l := LBO{
		PurchasePrice: quote.Float(q.MarketCap),
		DebtFinancing: 0.60,
		InterestRate:  interestRate,
		EBITDAGrowth:  0.08,
		ExitMultiple:  exitMultiple,
		HoldingPeriod: 5,
	}
	if quote.IsRecapScenario(scenarioID) {
		l.RecapYear = 3
		l.DividendPayout = 0.5
	}
	if scenarioID == quote.ScenarioMezzanineDebt {
		l.MezzanineFinancing = 0.15
		l.MezzanineInterestRate = 0.14
	}
	return l
}

// LBOInputs materializes the slider set for a scenario, including only the
// scenario-conditional sliders that are live.
func LBOInputs(l LBO, scenarioID string) map[string]Input {
	inputs := map[string]Input{
		"purchasePrice": {Label: "Purchase Price", Value: l.PurchasePrice},
		"interestRate":  {Label: "Interest Rate", Value: l.InterestRate, Min: 0.05, Max: 0.15, Step: 0.005},
		"debtFinancing": {Label: "Total Debt Financing", Value: l.DebtFinancing, Min: 0.2, Max: 0.8, Step: 0.01},
		"ebitdaGrowth":  {Label: "EBITDA Growth", Value: l.EBITDAGrowth, Min: 0, Max: 0.3, Step: 0.005},
		"exitMultiple":  {Label: "Exit Multiple", Value: l.ExitMultiple, Min: 5, Max: 40, Step: 0.5},
		"holdingPeriod": {Label: "Holding Period", Value: float64(l.HoldingPeriod), Min: 3, Max: 7, Step: 1},
	}
	if quote.IsRecapScenario(scenarioID) {
		inputs["recapYear"] = Input{Label: "Recap Year", Value: float64(l.RecapYear), Min: 2, Max: float64(l.HoldingPeriod - 1), Step: 1}
		inputs["dividendPayout"] = Input{Label: "Dividend Payout %", Value: l.DividendPayout, Min: 0.1, Max: 0.9, Step: 0.05}
	}
	if scenarioID == quote.ScenarioMezzanineDebt {
		inputs["mezzanineFinancing"] = Input{Label: "Mezzanine Financing %", Value: l.MezzanineFinancing, Min: 0.05, Max: 0.30, Step: 0.01}
		inputs["mezzanineInterestRate"] = Input{Label: "Mezzanine Interest % (PIK)", Value: l.MezzanineInterestRate, Min: 0.10, Max: 0.20, Step: 0.005}
	}
	return inputs
}

// LBOOverrides carries AI-suggested starting parameters for a scenario.
// Pointer fields distinguish "not suggested" from zero. Overrides are an
// input layer only: they are clamped into slider bounds before the engine
// ever sees them, keeping the engine deterministic and LLM-independent.
type LBOOverrides struct {
	DebtFinancing         *float64 `json:"debtFinancing"`
	InterestRate          *float64 `json:"interestRate"`
	EBITDAGrowth          *float64 `json:"ebitdaGrowth"`
	ExitMultiple          *float64 `json:"exitMultiple"`
	HoldingPeriod         *int     `json:"holdingPeriod"`
	RecapYear             *int     `json:"recapYear"`
	DividendPayout        *float64 `json:"dividendPayout"`
	MezzanineFinancing    *float64 `json:"mezzanineFinancing"`
	MezzanineInterestRate *float64 `json:"mezzanineInterestRate"`
}

// ApplyOverrides folds AI-suggested values into a base assumption set,
// clamping each into the bounds of its slider for the scenario.
func ApplyOverrides(base LBO, o *LBOOverrides, scenarioID string) LBO {
	if o == nil {
		return base
	}
	if o.HoldingPeriod != nil {
		hp := *o.HoldingPeriod
		if hp < 3 {
			hp = 3
		}
		if hp > 7 {
			hp = 7
		}
		base.HoldingPeriod = hp
	}
	inputs := LBOInputs(base, scenarioID)
	if o.DebtFinancing != nil {
		base.DebtFinancing = inputs["debtFinancing"].Clamp(*o.DebtFinancing)
	}
	if o.InterestRate != nil {
		base.InterestRate = inputs["interestRate"].Clamp(*o.InterestRate)
	}
	if o.EBITDAGrowth != nil {
		base.EBITDAGrowth = inputs["ebitdaGrowth"].Clamp(*o.EBITDAGrowth)
	}
	if o.ExitMultiple != nil {
		base.ExitMultiple = inputs["exitMultiple"].Clamp(*o.ExitMultiple)
	}
	if quote.IsRecapScenario(scenarioID) {
		if o.RecapYear != nil {
			ry := *o.RecapYear
			if ry < 2 {
				ry = 2
			}
			if ry > base.HoldingPeriod-1 {
				ry = base.HoldingPeriod - 1
			}
			base.RecapYear = ry
		}
		if o.DividendPayout != nil {
			base.DividendPayout = inputs["dividendPayout"].Clamp(*o.DividendPayout)
		}
	}
	if scenarioID == quote.ScenarioMezzanineDebt {
		if o.MezzanineFinancing != nil {
			base.MezzanineFinancing = inputs["mezzanineFinancing"].Clamp(*o.MezzanineFinancing)
		}
		if o.MezzanineInterestRate != nil {
			base.MezzanineInterestRate = inputs["mezzanineInterestRate"].Clamp(*o.MezzanineInterestRate)
		}
	}
	if base.MezzanineFinancing > base.DebtFinancing {
		base.MezzanineFinancing = base.DebtFinancing
	}
	return base
}
