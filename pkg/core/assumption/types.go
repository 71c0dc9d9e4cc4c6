// Package assumption defines the scenario inputs the valuation engines run
// on. Every input carries slider metadata (min/max/step) for UI binding, but
// only Value participates in computation. Assumption sets are plain values:
// the engines never mutate them, and a new set is built on every slider move.
package assumption

import (
	"fmt"
	"math"

	"pitchly/pkg/core/quote"
)

// Input is a bounded numeric model input.
type Input struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Step  float64 `json:"step,omitempty"`
}

// Clamp snaps a candidate value into the input's bounds.
func (in Input) Clamp(v float64) float64 {
	if in.Max > in.Min {
		v = math.Min(math.Max(v, in.Min), in.Max)
	}
	return v
}

// DCF holds the discount-model inputs. The standard FCFF variant reads
// RevenueGrowth/OperatingMargin/TaxRate/WACC; the financials DDM variant
// reads ROE/CostOfEquity. ReinvestmentRate and TerminalGrowth are shared.
type DCF struct {
	RevenueGrowth    float64 `json:"revenueGrowth"`
	OperatingMargin  float64 `json:"operatingMargin"`
	TaxRate          float64 `json:"taxRate"`
	ReinvestmentRate float64 `json:"reinvestmentRate"`
	WACC             float64 `json:"wacc"`
	ROE              float64 `json:"roe"`
	CostOfEquity     float64 `json:"costOfEquity"`
	TerminalGrowth   float64 `json:"terminalGrowth"`
}

// DiscountRate returns the rate the engine discounts at for the given sector:
// cost of equity for Financials, WACC otherwise.
func (d DCF) DiscountRate(domain quote.Domain) float64 {
	if domain == quote.DomainFinancials {
		return d.CostOfEquity
	}
	return d.WACC
}

// LBO holds the buyout inputs. Recap and mezzanine fields are only live for
// their scenarios; the scenario tag passed to the engine gates which fields
// are read, so stale values in the others are inert.
type LBO struct {
	PurchasePrice float64 `json:"purchasePrice"`
	DebtFinancing float64 `json:"debtFinancing"` // fraction of purchase price
	InterestRate  float64 `json:"interestRate"`
	EBITDAGrowth  float64 `json:"ebitdaGrowth"`
	ExitMultiple  float64 `json:"exitMultiple"`
	HoldingPeriod int     `json:"holdingPeriod"` // years

	RecapYear      int     `json:"recapYear,omitempty"`
	DividendPayout float64 `json:"dividendPayout,omitempty"`

	MezzanineFinancing    float64 `json:"mezzanineFinancing,omitempty"`
	MezzanineInterestRate float64 `json:"mezzanineInterestRate,omitempty"`
}

// Validate checks the structural invariants for a scenario. Violations are
// caller errors (bad slider wiring or a hostile request), not soft model
// conditions, so they surface as Go errors.
func (l LBO) Validate(scenarioID string) error {
	if l.DebtFinancing <= 0 || l.DebtFinancing >= 1 {
		return fmt.Errorf("debtFinancing must be in (0,1), got %v", l.DebtFinancing)
	}
	if l.HoldingPeriod < 3 || l.HoldingPeriod > 7 {
		return fmt.Errorf("holdingPeriod must be in [3,7], got %d", l.HoldingPeriod)
	}
	if quote.IsRecapScenario(scenarioID) {
		if l.RecapYear < 2 || l.RecapYear > l.HoldingPeriod-1 {
			return fmt.Errorf("recapYear must be in [2,%d], got %d", l.HoldingPeriod-1, l.RecapYear)
		}
	}
	if scenarioID == quote.ScenarioMezzanineDebt {
		if l.MezzanineFinancing > l.DebtFinancing {
			return fmt.Errorf("mezzanineFinancing %v exceeds debtFinancing %v", l.MezzanineFinancing, l.DebtFinancing)
		}
	}
	return nil
}
