// Package analysis generates narrative research documents (SWOT, memos,
// pitch decks, news digests) and model assumptions through the configured
// LLM providers.
package analysis

import (
	"context"
	"fmt"

	"pitchly/pkg/core/agent"
	"pitchly/pkg/core/prompt"
	"pitchly/pkg/core/utils"
)

// Analysis kinds. These double as storage keys and API parameters.
const (
	KindSWOT      = "swot"
	KindMemo      = "memo"
	KindPitchDeck = "pitch_deck"
	KindNews      = "news"
)

// Engine orchestrates narrative generation through the agent manager.
type Engine struct {
	mgr *agent.Manager
}

// NewEngine creates an analysis engine backed by the given agent manager.
func NewEngine(mgr *agent.Manager) *Engine {
	return &Engine{mgr: mgr}
}

// Generate produces a markdown analysis document of the given kind.
// Pitch decks, memos and news digests use web grounding so the output
// reflects current filings and coverage.
func (e *Engine) Generate(ctx context.Context, ticker, companyName, kind string) (string, error) {
	userPrompt, err := buildPrompt(ticker, companyName, kind)
	if err != nil {
		return "", err
	}

	systemPrompt := ""
	if sp, err := prompt.GetAnalysisPrompt(kind); err == nil {
		systemPrompt = sp
	}

	options := map[string]interface{}{"google_search": true}

	fmt.Printf("[ANALYSIS] Generating %s for %s\n", kind, ticker)
	raw, err := e.mgr.ExecutePrompt(ctx, "narrative", userPrompt, systemPrompt, options)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s analysis: %w", kind, err)
	}

	cleaned := utils.CleanMarkdown(raw)
	if !utils.ValidateMarkdown(cleaned) {
		fmt.Printf("[WARNING] Generated %s for %s did not parse as markdown\n", kind, ticker)
	}
	return cleaned, nil
}

// buildPrompt returns the user prompt for an analysis kind. The registry
// template wins when loaded; otherwise the built-in wording is used.
func buildPrompt(ticker, companyName, kind string) (string, error) {
	if pt, err := prompt.Get().GetPrompt("analysis." + kind); err == nil && pt.UserPromptTmpl != "" {
		ctx := prompt.NewContext().
			Set("Ticker", ticker).
			Set("CompanyName", companyName)
		if rendered, err := prompt.RenderUserPrompt(pt, ctx); err == nil && rendered != "" {
			return rendered, nil
		}
	}

	switch kind {
	case KindSWOT:
		return fmt.Sprintf("As a strategy consultant, conduct a SWOT analysis for %s (%s). Base your findings on current information from financial reports, news articles, and market analysis available on the web. Provide 2-3 distinct points for each category (Strengths, Weaknesses, Opportunities, Threats).", companyName, ticker), nil
	case KindMemo:
		return fmt.Sprintf("Act as an investment banking associate. Draft a 1-page investment memo for %s (%s). Your analysis must be grounded in real-time financial data, recent news, and market sentiment. Include: Company Overview, Investment Thesis, Financial Snapshot, Key Risks & Mitigants, and Exit Strategy.", companyName, ticker), nil
	case KindPitchDeck:
		return pitchDeckPrompt(ticker, companyName), nil
	case KindNews:
		return fmt.Sprintf("Act as a senior financial analyst. Use real-time search data to summarize the most impactful news for %s from the past month. Focus on earnings, strategic initiatives, and analyst ratings. Format as 3-4 concise bullet points.", ticker), nil
	default:
		return "", fmt.Errorf("unknown analysis kind: %s", kind)
	}
}
