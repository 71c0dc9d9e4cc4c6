package analysis_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pitchly/pkg/core/agent"
	"pitchly/pkg/core/analysis"
	"pitchly/pkg/core/quote"
)

type fakeProvider struct {
	response    string
	err         error
	lastPrompt  string
	lastOptions map[string]interface{}
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	f.lastPrompt = prompt
	f.lastOptions = options
	return f.response, f.err
}

func newFakeEngine(fp *fakeProvider) *analysis.Engine {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "fake"})
	mgr.RegisterProvider("fake", fp)
	return analysis.NewEngine(mgr)
}

func floatPtr(v float64) *float64 { return &v }

func TestGenerate_SWOT(t *testing.T) {
	fp := &fakeProvider{response: "```markdown\n## Strengths\n- Scale\n```"}
	engine := newFakeEngine(fp)

	out, err := engine.Generate(context.Background(), "TSLA", "Tesla, Inc.", analysis.KindSWOT)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "## Strengths\n- Scale" {
		t.Errorf("expected markdown fence stripped, got %q", out)
	}
	if !strings.Contains(fp.lastPrompt, "SWOT analysis for Tesla, Inc. (TSLA)") {
		t.Errorf("prompt missing company framing: %q", fp.lastPrompt)
	}
	if fp.lastOptions["google_search"] != true {
		t.Error("narrative generation should request web grounding")
	}
}

func TestGenerate_PitchDeckPromptNamesAllSlides(t *testing.T) {
	fp := &fakeProvider{response: "### 1. Slide"}
	engine := newFakeEngine(fp)

	if _, err := engine.Generate(context.Background(), "NVDA", "NVIDIA Corp.", analysis.KindPitchDeck); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 1; i <= 9; i++ {
		if !strings.Contains(fp.lastPrompt, fmt.Sprintf("### %d.", i)) {
			t.Errorf("deck prompt missing slide %d", i)
		}
	}
	if !strings.Contains(fp.lastPrompt, `[CHART type="bar-line-combo"`) {
		t.Error("deck prompt missing chart block format")
	}
	if !strings.Contains(fp.lastPrompt, `[DIAGRAM type="timeline"]`) {
		t.Error("deck prompt missing diagram block format")
	}
}

func TestGenerate_UnknownKind(t *testing.T) {
	engine := newFakeEngine(&fakeProvider{})
	if _, err := engine.Generate(context.Background(), "TSLA", "Tesla, Inc.", "balance_sheet"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	engine := newFakeEngine(&fakeProvider{err: fmt.Errorf("quota exceeded")})
	if _, err := engine.Generate(context.Background(), "TSLA", "Tesla, Inc.", analysis.KindNews); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestParseSlides(t *testing.T) {
	text := "### 1. Company Overview\nFacts table\n\n### 2. Market Overview\nChart\n\n### 3. Peers\nTable"
	slides := analysis.ParseSlides(text)
	if len(slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(slides))
	}
	if slides[0].Title != "1. Company Overview" {
		t.Errorf("title = %q", slides[0].Title)
	}
	if slides[1].Content != "Chart" {
		t.Errorf("content = %q", slides[1].Content)
	}
}

func TestParseSlides_SlidePrefix(t *testing.T) {
	text := "Slide 1: Overview\nBody A\nSlide 2: Thesis\nBody B"
	slides := analysis.ParseSlides(text)
	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	if slides[0].Title != "Overview" || slides[1].Title != "Thesis" {
		t.Errorf("titles = %q, %q", slides[0].Title, slides[1].Title)
	}
}

func TestParseSlides_Fallback(t *testing.T) {
	slides := analysis.ParseSlides("")
	if len(slides) != 1 || slides[0].Title != "Generated Content" {
		t.Errorf("expected the fallback slide, got %+v", slides)
	}
}

func TestBuildLBOAssumptionPrompt(t *testing.T) {
	q := &quote.Quote{
		Ticker:      "TSLA",
		CompanyName: "Tesla, Inc.",
		Domain:      quote.DomainTechnology,
		MarketCap:   floatPtr(7.8e11),
		EBITDA:      floatPtr(1.2e10),
	}

	p := analysis.BuildLBOAssumptionPrompt(q, quote.ScenarioMezzanineDebt)
	if !strings.Contains(p, "a Technology company with a market cap of $780.00B and EBITDA of $12.00B") {
		t.Errorf("prompt missing scale framing: %q", p)
	}
	if !strings.Contains(p, "mezzanine debt tranche") {
		t.Error("prompt missing scenario description")
	}
	if !strings.Contains(p, `"mezzanineFinancing" (as a number from 0.05 to 0.3)`) {
		t.Error("prompt missing mezzanine field hint")
	}

	base := analysis.BuildLBOAssumptionPrompt(q, quote.ScenarioBaseCase)
	if strings.Contains(base, "mezzanineFinancing") {
		t.Error("base case should not carry mezzanine field hints")
	}
	if !strings.Contains(base, "standard sponsor-to-sponsor") {
		t.Error("base case missing scenario description")
	}
}

func TestGenerateLBOAssumptions(t *testing.T) {
	// Single quotes and a trailing comma exercise the repair path.
	fp := &fakeProvider{response: "{'debtFinancing': 0.55, 'interestRate': 0.09, 'ebitdaGrowth': 0.1, 'exitMultiple': 12, 'holdingPeriod': 5,}"}
	engine := newFakeEngine(fp)

	q := &quote.Quote{Ticker: "TSLA", CompanyName: "Tesla, Inc.", Domain: quote.DomainTechnology}
	o := engine.GenerateLBOAssumptions(context.Background(), q, quote.ScenarioBaseCase)
	if o == nil {
		t.Fatal("expected parsed overrides")
	}
	if o.DebtFinancing == nil || *o.DebtFinancing != 0.55 {
		t.Errorf("DebtFinancing = %v", o.DebtFinancing)
	}
	if o.HoldingPeriod == nil || *o.HoldingPeriod != 5 {
		t.Errorf("HoldingPeriod = %v", o.HoldingPeriod)
	}
	if rf, ok := fp.lastOptions["response_format"].(map[string]interface{}); !ok || rf["type"] != "json_object" {
		t.Error("assumption generation should request JSON output")
	}
}

func TestGenerateLBOAssumptions_FailuresReturnNil(t *testing.T) {
	q := &quote.Quote{Ticker: "TSLA", CompanyName: "Tesla, Inc."}

	engine := newFakeEngine(&fakeProvider{err: fmt.Errorf("timeout")})
	if o := engine.GenerateLBOAssumptions(context.Background(), q, quote.ScenarioBaseCase); o != nil {
		t.Error("provider error should yield nil overrides")
	}

	engine = newFakeEngine(&fakeProvider{response: "I cannot help with that."})
	if o := engine.GenerateLBOAssumptions(context.Background(), q, quote.ScenarioBaseCase); o != nil {
		t.Error("unparseable output should yield nil overrides")
	}
}
