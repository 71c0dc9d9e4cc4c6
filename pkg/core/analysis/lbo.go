package analysis

import (
	"context"
	"fmt"
	"strings"

	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/format"
	"pitchly/pkg/core/prompt"
	"pitchly/pkg/core/quote"
	"pitchly/pkg/core/utils"
)

// scenarioDescriptions frame the deal type for the assumption prompt.
var scenarioDescriptions = map[string]string{
	quote.ScenarioBaseCase:         "standard sponsor-to-sponsor",
	quote.ScenarioDividendRecap:    "dividend recapitalization",
	quote.ScenarioMezzanineDebt:    "leveraged buyout with a mezzanine debt tranche",
	quote.ScenarioIPOExit:          "LBO with a planned IPO exit, potentially justifying a higher exit multiple",
	quote.ScenarioGrowthEquity:     "minority growth equity investment in a high-growth tech company to fund expansion, not a traditional buyout. Assume lower leverage (debtFinancing).",
	quote.ScenarioStrategicSale:    "LBO with an exit to a strategic corporate acquirer, which might justify a higher synergy-driven exit multiple.",
	quote.ScenarioClubDeal:         "large LBO where multiple PE firms pool capital. Assumptions should reflect a larger, more stable target.",
	quote.ScenarioLeveragedRecap:   "leveraged recapitalization for a financial institution, focusing on optimizing the capital structure.",
	quote.ScenarioSponsorExit:      `an exit where one private equity firm sells the company to another, often with a "second bite of the apple" thesis.`,
	quote.ScenarioManagementBuyout: "a transaction where the company's existing management team acquires the company, often with financial sponsor backing.",
}

// scenarioFieldHints add the extra JSON fields a scenario needs, or steer
// the ranges for the shared ones.
var scenarioFieldHints = map[string]string{
	quote.ScenarioDividendRecap:  `Also include "recapYear" (as an integer from 2 to 4) and "dividendPayout" (as a number from 0.1 to 0.9).`,
	quote.ScenarioLeveragedRecap: `Also include "recapYear" (as an integer from 2 to 4) and "dividendPayout" (as a number from 0.1 to 0.9).`,
	quote.ScenarioMezzanineDebt:  `Also include "mezzanineFinancing" (as a number from 0.05 to 0.3) and "mezzanineInterestRate" (as a number from 0.1 to 0.2).`,
	quote.ScenarioIPOExit:        `For the "exitMultiple", consider a 10-25% premium over a typical trade sale multiple.`,
	quote.ScenarioStrategicSale:  `For the "exitMultiple", consider a 15-30% premium over a typical trade sale multiple due to expected synergies.`,
	quote.ScenarioGrowthEquity:   `The "debtFinancing" should be lower, between 0.2 and 0.4. "ebitdaGrowth" should be higher.`,
}

// BuildLBOAssumptionPrompt renders the deal-assumption prompt for a
// company and scenario.
func BuildLBOAssumptionPrompt(q *quote.Quote, scenarioID string) string {
	desc, ok := scenarioDescriptions[scenarioID]
	if !ok {
		desc = scenarioDescriptions[quote.ScenarioBaseCase]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a senior investment banking analyst. For %s (%s), a %s company with a market cap of %s and EBITDA of %s, generate a set of reasonable initial assumptions for a %s LBO model.\n\n",
		q.CompanyName, q.Ticker, q.Domain,
		format.LargeNumber(q.MarketCap), format.LargeNumber(q.EBITDA), desc)

	b.WriteString(`Return ONLY a single, valid JSON object with the following numeric values:
- "debtFinancing": Total debt as a percentage of purchase price.
- "interestRate": Blended interest rate on senior debt.
- "ebitdaGrowth": Projected annual EBITDA growth rate.
- "exitMultiple": The LTM EBITDA multiple at exit.
- "holdingPeriod": The investment hold period in years (integer).
`)
	if hint := scenarioFieldHints[scenarioID]; hint != "" {
		b.WriteString(hint)
		b.WriteString("\n")
	}
	b.WriteString(`
Base your assumptions on the company's scale and industry-specific private equity deal structures. Ensure the JSON is valid. Example for a base case: {"debtFinancing": 0.6, "interestRate": 0.09, "ebitdaGrowth": 0.08, "exitMultiple": 15, "holdingPeriod": 5}`)

	return b.String()
}

// GenerateLBOAssumptions asks the model for scenario-appropriate deal
// assumptions. Failures return nil so callers fall through to the
// domain defaults.
func (e *Engine) GenerateLBOAssumptions(ctx context.Context, q *quote.Quote, scenarioID string) *assumption.LBOOverrides {
	userPrompt := BuildLBOAssumptionPrompt(q, scenarioID)

	systemPrompt := ""
	if sp, err := prompt.GetLBOPrompt("assumptions"); err == nil {
		systemPrompt = sp
	}

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	raw, err := e.mgr.ExecutePrompt(ctx, "lbo_modeler", userPrompt, systemPrompt, options)
	if err != nil {
		fmt.Printf("[WARNING] LBO assumption generation failed for %s/%s: %v\n", q.Ticker, scenarioID, err)
		return nil
	}

	var overrides assumption.LBOOverrides
	if _, err := utils.SmartParse(raw, &overrides); err != nil {
		fmt.Printf("[WARNING] Could not parse LBO assumptions for %s/%s: %v\n", q.Ticker, scenarioID, err)
		return nil
	}
	return &overrides
}
