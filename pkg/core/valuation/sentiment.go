package valuation

import (
	"fmt"

	"pitchly/pkg/core/format"
	"pitchly/pkg/core/quote"
)

// Sentiment is a verdict badge plus the commentary shown under a model.
type Sentiment struct {
	Badge      string `json:"badge"`
	Commentary string `json:"commentary"`
}

// ClassifyDCF turns a DCF result into an investor-facing verdict. Upside
// beyond 15 percent in either direction moves the badge off Fair Value;
// a missing per-share value yields an Incomplete badge carrying the model's
// soft error.
func ClassifyDCF(res DCFResult, q *quote.Quote) Sentiment {
	if res.PotentialUpside == nil {
		text := res.Error
		if text == "" {
			text = "Per-share value cannot be determined."
		}
		return Sentiment{Badge: "Incomplete", Commentary: text}
	}

	var badge, baseText string
	switch {
	case *res.PotentialUpside > 0.15:
		badge = "Undervalued"
		baseText = "The model indicates the stock is undervalued, driven by strong growth and margin assumptions."
	case *res.PotentialUpside < -0.15:
		badge = "Overvalued"
		baseText = "High valuation multiples are not supported by fundamentals, suggesting the stock is overvalued."
	default:
		badge = "Fair Value"
		baseText = "The stock appears to be fairly valued, with market price aligning closely with intrinsic value estimates."
	}

	text := baseText
	if res.DerivedRevenueNote != "" {
		if q.Domain == quote.DomainFinancials {
			text = res.DerivedRevenueNote + " " + baseText
		} else {
			text = baseText + " " + res.DerivedRevenueNote
		}
	}
	if q.TaxRateIsAssumed {
		text += fmt.Sprintf(" A statutory tax rate of %s was assumed.", format.PercentOf(q.TaxRate))
	}
	return Sentiment{Badge: badge, Commentary: text}
}

// ClassifyLBO maps an LBO result to a verdict on the deal's returns. The
// hurdle is a 20 percent IRR; commentary is tailored to the scenario's
// thesis.
func ClassifyLBO(res LBOResult, scenarioID string) Sentiment {
	irr := format.PercentOf(res.IRR)

	if res.IRR > 0.20 {
		var text string
		switch {
		case quote.IsRecapScenario(scenarioID):
			text = fmt.Sprintf("The recapitalization strategy boosts IRR to %s, accelerating returns to the sponsor.", irr)
		case scenarioID == quote.ScenarioMezzanineDebt:
			text = fmt.Sprintf("The use of mezzanine financing increases leverage, boosting the IRR to %s but elevating the risk profile.", irr)
		case scenarioID == quote.ScenarioIPOExit:
			text = fmt.Sprintf("A successful IPO exit at a premium multiple could yield an attractive IRR of %s.", irr)
		case scenarioID == quote.ScenarioGrowthEquity:
			text = fmt.Sprintf("High growth assumptions lead to a strong %s IRR, typical of successful growth equity deals.", irr)
		case scenarioID == quote.ScenarioStrategicSale:
			text = fmt.Sprintf("An exit to a strategic buyer with synergies unlocks a %s IRR.", irr)
		case scenarioID == quote.ScenarioClubDeal:
			text = fmt.Sprintf("The scale of this club deal allows for stable cash flows, supporting a solid %s IRR.", irr)
		case scenarioID == quote.ScenarioSponsorExit:
			text = fmt.Sprintf("A secondary buyout thesis is supported by a compelling %s IRR, indicating further value creation potential.", irr)
		case scenarioID == quote.ScenarioManagementBuyout:
			text = fmt.Sprintf("Aligning with management in an MBO proves fruitful, delivering a %s IRR.", irr)
		default:
			text = fmt.Sprintf("This LBO delivers a %s IRR, driven by strong EBITDA growth and deleveraging.", irr)
		}
		return Sentiment{Badge: "Attractive IRR", Commentary: text}
	}

	var text string
	switch scenarioID {
	case quote.ScenarioMezzanineDebt:
		text = fmt.Sprintf("Even with additional leverage from mezzanine debt, the IRR of %s is weak.", irr)
	case quote.ScenarioIPOExit:
		text = fmt.Sprintf("The projected IRR of %s is weak, suggesting the IPO premium may not justify the risk.", irr)
	case quote.ScenarioGrowthEquity:
		text = fmt.Sprintf("The projected %s IRR is low for a growth equity case, questioning the growth story.", irr)
	default:
		text = fmt.Sprintf("The projected IRR of %s may not meet typical private equity return hurdles.", irr)
	}
	return Sentiment{Badge: "Weak IRR", Commentary: text}
}
