package valuation

import (
	"math"

	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/quote"
)

// LBOProjection is one holding-period year after the transaction closes.
// DebtBalance is senior plus mezzanine at year end.
type LBOProjection struct {
	Year        int     `json:"year"`
	EBITDA      float64 `json:"ebitda"`
	CashFlow    float64 `json:"cashFlow"`
	DebtBalance float64 `json:"debtBalance"`
}

// LBOResult holds the buyout model outputs. IRR is -1.0 (a total loss) when
// the deal wipes out the equity; with no purchase price or no equity
// invested, MOIC and IRR both stay zero.
type LBOResult struct {
	Projections        []LBOProjection `json:"projections"`
	InitialSeniorDebt  float64         `json:"initialSeniorDebt"`
	InitialMezzanine   float64         `json:"initialMezzanineDebt"`
	InitialEquity      float64         `json:"initialEquity"`
	ExitEquityValue    float64         `json:"exitEquityValue"`
	TotalDividendsPaid float64         `json:"totalDividendsPaid"`
	IRR                float64         `json:"irr"`
	MOIC               float64         `json:"moic"`
	Error              string          `json:"error,omitempty"`
}

// CalculateLBO runs a leveraged buyout over the holding period. Senior debt
// pays cash interest and amortises with swept free cash flow; mezzanine debt
// accrues PIK interest onto its principal and is repaid at exit. Recap
// scenarios lever back up in the recap year and pay the proceeds out as a
// dividend. Returns are measured on exit equity plus dividends against the
// sponsor's initial cheque.
func CalculateLBO(q *quote.Quote, a assumption.LBO, scenarioID string) LBOResult {
	res := LBOResult{}

	if err := a.Validate(scenarioID); err != nil {
		res.Error = err.Error()
		return res
	}

	// No purchase price means nothing to model: every output stays zero,
	// including the returns. Not an error condition.
	if a.PurchasePrice <= 0 {
		return res
	}

	years := a.HoldingPeriod
	ebitda := resolveEntryEBITDA(q, a)
	if ebitda <= 0 {
		res.Error = "EBITDA could not be derived. Cannot run the buyout model."
		return res
	}

	// Only the mezzanine scenario carves out a junior tranche; stale
	// mezzanine fields in any other scenario are inert.
	totalDebt := a.PurchasePrice * a.DebtFinancing
	mezzDebt := 0.0
	if scenarioID == quote.ScenarioMezzanineDebt {
		mezzDebt = math.Min(totalDebt, a.PurchasePrice*a.MezzanineFinancing)
	}
	seniorDebt := totalDebt - mezzDebt
	res.InitialSeniorDebt = seniorDebt
	res.InitialMezzanine = mezzDebt
	res.InitialEquity = a.PurchasePrice - totalDebt

	recap := quote.IsRecapScenario(scenarioID)

	currentEBITDA := ebitda
	for year := 1; year <= years; year++ {
		currentEBITDA *= 1 + a.EBITDAGrowth

		if recap && year == a.RecapYear {
			// Re-lever to the exit multiple and distribute the excess.
			dividend := (currentEBITDA*a.ExitMultiple - (seniorDebt + mezzDebt)) * a.DividendPayout
			if dividend > 0 {
				seniorDebt += dividend
				res.TotalDividendsPaid += dividend
			}
		}

		cashInterest := seniorDebt * a.InterestRate
		if scenarioID == quote.ScenarioMezzanineDebt {
			mezzDebt *= 1 + a.MezzanineInterestRate // PIK accrual
		}

		cashFlow := (currentEBITDA - cashInterest) * (1 - q.TaxRate)
		paydown := math.Min(seniorDebt, math.Max(cashFlow, 0))
		seniorDebt -= paydown

		res.Projections = append(res.Projections, LBOProjection{
			Year:        year,
			EBITDA:      currentEBITDA,
			CashFlow:    cashFlow,
			DebtBalance: seniorDebt + mezzDebt,
		})
	}

	exitEnterpriseValue := currentEBITDA * a.ExitMultiple
	res.ExitEquityValue = exitEnterpriseValue - (seniorDebt + mezzDebt)

	// With no equity invested the returns are undefined; leave MOIC and
	// IRR at zero rather than reporting a wipeout.
	if res.InitialEquity > 0 {
		res.MOIC = (res.ExitEquityValue + res.TotalDividendsPaid) / res.InitialEquity
		if res.MOIC > 0 {
			res.IRR = math.Pow(res.MOIC, 1/float64(years)) - 1
		} else {
			res.IRR = -1.0
		}
	}
	return res
}

// resolveEntryEBITDA falls back from reported EBITDA to an EV/EBITDA implied
// figure, and finally to discounting the exit-multiple-implied entry EBITDA
// back through the growth assumption.
func resolveEntryEBITDA(q *quote.Quote, a assumption.LBO) float64 {
	if quote.Positive(q.EBITDA) {
		return *q.EBITDA
	}
	if quote.Positive(q.MarketCap) && quote.Positive(q.EVEBITDA) {
		return *q.MarketCap / *q.EVEBITDA
	}
	if a.ExitMultiple > 0 && a.PurchasePrice > 0 {
		return (a.PurchasePrice / a.ExitMultiple) / math.Pow(1+a.EBITDAGrowth, float64(a.HoldingPeriod))
	}
	return 0
}
