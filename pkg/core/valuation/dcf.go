package valuation

import (
	"math"

	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/quote"
)

// ForecastHorizon is the number of projection years for both DCF variants.
const ForecastHorizon = 10

// DCFProjection is one forecast year. FreeCashFlow is FCFF for the standard
// model and FCFE for the financials DDM variant.
type DCFProjection struct {
	Year         int     `json:"year"`
	Revenue      float64 `json:"revenue,omitempty"`
	FreeCashFlow float64 `json:"freeCashFlow"`
}

// DCFResult holds the valuation outputs. A populated Error means a soft
// failure (missing data or degenerate parameters): monetary fields are
// zeroed, PerShareValue/PotentialUpside are nil, and nothing was thrown.
type DCFResult struct {
	ModelType          string          `json:"modelType"` // "Standard" or "Financials"
	Projections        []DCFProjection `json:"projections"`
	PVOfCashFlows      float64         `json:"presentValueOfCashFlows"`
	PVOfTerminalValue  float64         `json:"presentValueOfTerminalValue"`
	EnterpriseValue    float64         `json:"enterpriseValue"`
	EquityValue        float64         `json:"equityValue"`
	PerShareValue      *float64        `json:"perShareValue"`   // nil renders as N/A
	PotentialUpside    *float64        `json:"potentialUpside"` // nil renders as N/A
	DerivedRevenueNote string          `json:"derivedRevenueNote,omitempty"`
	Error              string          `json:"error,omitempty"`
}

// CalculateDCF values a company as the present value of ten projected years
// of free cash flow plus a Gordon-growth terminal value. Financial-sector
// quotes run a dividend discount variant driven by ROE over book value;
// everything else runs the standard FCFF model. The function is pure and
// never panics: every failure mode lands in the result's Error field.
func CalculateDCF(q *quote.Quote, a assumption.DCF) DCFResult {
	if q.Domain == quote.DomainFinancials {
		return calculateDDM(q, a)
	}
	return calculateFCFF(q, a)
}

func calculateDDM(q *quote.Quote, a assumption.DCF) DCFResult {
	res := DCFResult{ModelType: "Financials"}

	if !quote.Positive(q.MarketCap) || !quote.Positive(q.PBRatio) {
		res.Error = "Missing Market Cap or P/B Ratio. Cannot perform DDM valuation."
		return res
	}
	bookValue := *q.MarketCap / *q.PBRatio
	if bookValue <= 0 {
		res.Error = "Invalid Book Value derived. Cannot perform DDM valuation."
		return res
	}
	if a.CostOfEquity <= a.TerminalGrowth {
		res.Error = "Cost of equity must exceed terminal growth; terminal value is undefined."
		return res
	}

	// Book value compounds with retained earnings; FCFE is what is left
	// after reinvestment.
	currentBookValue := bookValue
	for i := 1; i <= ForecastHorizon; i++ {
		netIncome := currentBookValue * a.ROE
		reinvestment := netIncome * a.ReinvestmentRate
		fcfe := netIncome - reinvestment
		currentBookValue += reinvestment
		res.Projections = append(res.Projections, DCFProjection{Year: i, FreeCashFlow: fcfe})
	}

	for i, p := range res.Projections {
		res.PVOfCashFlows += p.FreeCashFlow / math.Pow(1+a.CostOfEquity, float64(i+1))
	}
	lastFCFE := res.Projections[len(res.Projections)-1].FreeCashFlow
	terminalValue := lastFCFE * (1 + a.TerminalGrowth) / (a.CostOfEquity - a.TerminalGrowth)
	res.PVOfTerminalValue = terminalValue / math.Pow(1+a.CostOfEquity, ForecastHorizon)

	// Enterprise value is not a standard concept for banks; equity value
	// stands in for it.
	res.EquityValue = res.PVOfCashFlows + res.PVOfTerminalValue
	res.EnterpriseValue = res.EquityValue
	res.DerivedRevenueNote = "Valuation based on a Dividend Discount Model using Book Value, ROE, and Cost of Equity."

	finishPerShare(&res, q)
	return res
}

func calculateFCFF(q *quote.Quote, a assumption.DCF) DCFResult {
	res := DCFResult{ModelType: "Standard"}

	if a.WACC <= a.TerminalGrowth {
		res.Error = "WACC must exceed terminal growth; terminal value is undefined."
		return res
	}

	// Revenue imputation chain: reported, then EBITDA over margin, then
	// market cap over P/S. The note records which path was taken for the
	// commentary layer.
	revenue := quote.Float(q.Revenue)
	if revenue <= 0 {
		switch {
		case quote.Positive(q.EBITDA) && a.OperatingMargin > 0:
			revenue = *q.EBITDA / a.OperatingMargin
			res.DerivedRevenueNote = "Revenue was derived from EBITDA and Operating Margin."
		case q.MarketCap != nil && quote.Positive(q.PSRatio):
			revenue = *q.MarketCap / *q.PSRatio
			res.DerivedRevenueNote = "Revenue was derived from Market Cap and P/S Ratio."
		}
	}
	if revenue <= 0 {
		res.Error = "Revenue could not be derived. Cannot perform DCF."
		return res
	}

	currentRevenue := revenue
	for i := 1; i <= ForecastHorizon; i++ {
		currentRevenue *= 1 + a.RevenueGrowth
		ebit := currentRevenue * a.OperatingMargin
		nopat := ebit * (1 - a.TaxRate)
		reinvestment := nopat * a.ReinvestmentRate
		fcff := nopat - reinvestment
		res.Projections = append(res.Projections, DCFProjection{Year: i, Revenue: currentRevenue, FreeCashFlow: fcff})
	}

	for i, p := range res.Projections {
		res.PVOfCashFlows += p.FreeCashFlow / math.Pow(1+a.WACC, float64(i+1))
	}
	lastFCFF := res.Projections[len(res.Projections)-1].FreeCashFlow
	terminalValue := lastFCFF * (1 + a.TerminalGrowth) / (a.WACC - a.TerminalGrowth)
	res.PVOfTerminalValue = terminalValue / math.Pow(1+a.WACC, ForecastHorizon)

	res.EnterpriseValue = res.PVOfCashFlows + res.PVOfTerminalValue
	res.EquityValue = res.EnterpriseValue - q.NetDebt

	finishPerShare(&res, q)
	return res
}

// finishPerShare derives per-share value and upside against the current
// price. Missing shares is a soft error: the aggregate values stand but the
// per-share fields stay nil.
func finishPerShare(res *DCFResult, q *quote.Quote) {
	if !quote.Positive(q.Shares) {
		res.Error = "Missing or invalid Shares Outstanding data. Cannot calculate per-share value."
		return
	}
	perShare := res.EquityValue / *q.Shares
	res.PerShareValue = &perShare
	if quote.Positive(q.Price) {
		upside := (perShare - *q.Price) / *q.Price
		res.PotentialUpside = &upside
	}
}
