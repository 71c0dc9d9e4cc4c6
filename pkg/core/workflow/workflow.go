// Package workflow assembles the full valuation dashboard payload for one
// company: the DCF card, one LBO card per sector scenario, and the peer
// comparison block. Everything here is a pure transform over quotes and
// assumptions; AI-suggested overrides come in through a callback so the
// orchestrator stays independent of any provider.
package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/quote"
	"pitchly/pkg/core/valuation"
)

const workflowTitle = "Pitchly Valuation Workflow"

// Meta identifies one workflow build.
type Meta struct {
	ID             string    `json:"id"`
	SelectedTicker string    `json:"selectedTicker"`
	Title          string    `json:"title"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// CardHeader labels a model card.
type CardHeader struct {
	Ticker string `json:"ticker"`
	Badge  string `json:"badge"`
}

// DCFCard is the discount-model block of the dashboard. WACCReference is a
// CAPM cross-check shown beside the WACC slider; it is absent for the DDM
// variant, which discounts at cost of equity.
type DCFCard struct {
	Header        CardHeader                  `json:"header"`
	ModelType     string                      `json:"modelType"`
	Inputs        map[string]assumption.Input `json:"inputs"`
	Outputs       valuation.DCFResult         `json:"outputs"`
	WACCReference *valuation.WACCResult       `json:"waccReference,omitempty"`
	Sentiment     string                      `json:"sentiment"`
	Commentary    string                      `json:"commentary"`
}

// ScenarioHeader labels one LBO scenario card.
type ScenarioHeader struct {
	Ticker       string `json:"ticker"`
	ScenarioID   string `json:"scenarioId"`
	ScenarioName string `json:"scenarioName"`
	Badge        string `json:"badge"`
}

// LBOCard is one buyout scenario block.
type LBOCard struct {
	Header     ScenarioHeader              `json:"header"`
	Inputs     map[string]assumption.Input `json:"inputs"`
	Outputs    valuation.LBOResult         `json:"outputs"`
	Sentiment  string                      `json:"sentiment"`
	Commentary string                      `json:"commentary"`
}

// LBOAnalysis holds the per-scenario cards, in the sector's scenario order.
type LBOAnalysis struct {
	Scenarios []LBOCard `json:"scenarios"`
}

// ValuationWorkflow is the full dashboard payload for one ticker.
type ValuationWorkflow struct {
	Meta           Meta                     `json:"meta"`
	DCFValuation   DCFCard                  `json:"dcfValuation"`
	LBOAnalysis    LBOAnalysis              `json:"lboAnalysis"`
	PeerComparison valuation.PeerComparison `json:"peerComparison"`
}

// OverrideFunc supplies AI-suggested LBO starting assumptions for a
// scenario. A nil return (or a nil func) means defaults apply.
type OverrideFunc func(q *quote.Quote, scenarioID string) *assumption.LBOOverrides

// Build assembles the workflow for a quote and its fetched peers.
func Build(q *quote.Quote, peers []*quote.Quote, overrides OverrideFunc) ValuationWorkflow {
	fmt.Printf("[WORKFLOW] Building valuation workflow for %s (%s)\n", q.Ticker, q.Domain)

	wf := ValuationWorkflow{
		Meta: Meta{
			ID:             uuid.NewString(),
			SelectedTicker: q.Ticker,
			Title:          workflowTitle,
			GeneratedAt:    time.Now(),
		},
		DCFValuation:   BuildDCFCard(q, assumption.DefaultDCF(q)),
		PeerComparison: valuation.ComparePeers(q, peers),
	}

	for _, sc := range quote.ScenariosFor(q.Domain) {
		base := assumption.DefaultLBO(q, sc.ID)
		if overrides != nil {
			base = assumption.ApplyOverrides(base, overrides(q, sc.ID), sc.ID)
		}
		wf.LBOAnalysis.Scenarios = append(wf.LBOAnalysis.Scenarios, BuildLBOCard(q, base, sc))
	}
	return wf
}

// BuildDCFCard runs the discount model with the given assumptions and wraps
// the result with its sliders and verdict. Slider-move recomputes reuse this
// directly.
func BuildDCFCard(q *quote.Quote, a assumption.DCF) DCFCard {
	res := valuation.CalculateDCF(q, a)
	verdict := valuation.ClassifyDCF(res, q)

	badge := "DCF Model"
	var waccRef *valuation.WACCResult
	if q.Domain == quote.DomainFinancials {
		badge = "DDM/ROE Model"
	} else {
		ref := valuation.ReferenceWACC(q)
		waccRef = &ref
	}
	return DCFCard{
		Header:        CardHeader{Ticker: q.Ticker, Badge: badge},
		ModelType:     res.ModelType,
		Inputs:        assumption.DCFInputs(q, a),
		Outputs:       res,
		WACCReference: waccRef,
		Sentiment:     verdict.Badge,
		Commentary:    verdict.Commentary,
	}
}

// BuildLBOCard runs one buyout scenario and wraps it as a card.
func BuildLBOCard(q *quote.Quote, a assumption.LBO, sc quote.Scenario) LBOCard {
	res := valuation.CalculateLBO(q, a, sc.ID)
	verdict := valuation.ClassifyLBO(res, sc.ID)
	return LBOCard{
		Header: ScenarioHeader{
			Ticker:       q.Ticker,
			ScenarioID:   sc.ID,
			ScenarioName: sc.Name,
			Badge:        verdict.Badge,
		},
		Inputs:     assumption.LBOInputs(a, sc.ID),
		Outputs:    res,
		Sentiment:  verdict.Badge,
		Commentary: verdict.Commentary,
	}
}
