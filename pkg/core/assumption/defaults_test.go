package assumption_test

import (
	"math"
	"testing"

	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/quote"
)

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDefaultDCF_Standard(t *testing.T) {
	q := &quote.Quote{Ticker: "NVDA", Domain: quote.DomainTechnology, TaxRate: 0.133}
	d := assumption.DefaultDCF(q)

	approx(t, "RevenueGrowth", d.RevenueGrowth, 0.15)
	approx(t, "OperatingMargin", d.OperatingMargin, 0.18)
	approx(t, "TaxRate", d.TaxRate, 0.133)
	approx(t, "ReinvestmentRate", d.ReinvestmentRate, 0.30)
	approx(t, "WACC", d.WACC, 0.095)
	approx(t, "TerminalGrowth", d.TerminalGrowth, 0.025)

	// A missing tax rate falls back to the US statutory default.
	q.TaxRate = 0
	approx(t, "fallback TaxRate", assumption.DefaultDCF(q).TaxRate, 0.21)
}

func TestDefaultDCF_Financials(t *testing.T) {
	q := &quote.Quote{Ticker: "JPM", Domain: quote.DomainFinancials, ROE: floatPtr(0.17)}
	d := assumption.DefaultDCF(q)

	approx(t, "ROE", d.ROE, 0.17)
	approx(t, "ReinvestmentRate", d.ReinvestmentRate, 0.60)
	approx(t, "CostOfEquity", d.CostOfEquity, 0.10)
	approx(t, "TerminalGrowth", d.TerminalGrowth, 0.02)

	q.ROE = nil
	approx(t, "fallback ROE", assumption.DefaultDCF(q).ROE, 0.12)
}

func TestDCFInputs_LabelsAndBounds(t *testing.T) {
	q := &quote.Quote{Ticker: "SONY", Domain: quote.DomainTechnology, TaxRate: 0.306, TaxRateIsAssumed: true, TaxRateSource: " (Assumed for Japan)"}
	inputs := assumption.DCFInputs(q, assumption.DefaultDCF(q))

	tax, ok := inputs["taxRate"]
	if !ok {
		t.Fatal("taxRate slider missing")
	}
	if tax.Label != "Tax Rate (Assumed for Japan)" {
		t.Errorf("tax label = %q", tax.Label)
	}

	fin := &quote.Quote{Ticker: "JPM", Domain: quote.DomainFinancials}
	finInputs := assumption.DCFInputs(fin, assumption.DefaultDCF(fin))
	if _, ok := finInputs["wacc"]; ok {
		t.Error("Financials sliders must not expose WACC")
	}
	if _, ok := finInputs["costOfEquity"]; !ok {
		t.Error("Financials sliders missing costOfEquity")
	}
}

func TestDefaultLBO(t *testing.T) {
	q := &quote.Quote{
		Ticker:       "COST",
		MarketCap:    floatPtr(4.0e11),
		PERatio:      floatPtr(50),
		InterestRate: quote.DefaultInterestRate,
	}
	l := assumption.DefaultLBO(q, quote.ScenarioBaseCase)

	approx(t, "PurchasePrice", l.PurchasePrice, 4.0e11)
	approx(t, "DebtFinancing", l.DebtFinancing, 0.60)
	approx(t, "InterestRate", l.InterestRate, 0.085)
	approx(t, "EBITDAGrowth", l.EBITDAGrowth, 0.08)
	// P/E 50 * 0.8 = 40 clamps to the 25x ceiling.
	approx(t, "ExitMultiple", l.ExitMultiple, 25)
	if l.HoldingPeriod != 5 {
		t.Errorf("HoldingPeriod = %d, want 5", l.HoldingPeriod)
	}
	if l.RecapYear != 0 || l.MezzanineFinancing != 0 {
		t.Error("scenario-conditional fields must stay zero for the base case")
	}

	// Low P/E clamps to the 8x floor; missing P/E defaults to 15x.
	q.PERatio = floatPtr(5)
	approx(t, "floored ExitMultiple", assumption.DefaultLBO(q, quote.ScenarioBaseCase).ExitMultiple, 8)
	q.PERatio = nil
	approx(t, "default ExitMultiple", assumption.DefaultLBO(q, quote.ScenarioBaseCase).ExitMultiple, 15)
}

func TestDefaultLBO_ScenarioFields(t *testing.T) {
	q := &quote.Quote{Ticker: "COST", MarketCap: floatPtr(1000)}

	recap := assumption.DefaultLBO(q, quote.ScenarioDividendRecap)
	if recap.RecapYear != 3 {
		t.Errorf("RecapYear = %d, want 3", recap.RecapYear)
	}
	approx(t, "DividendPayout", recap.DividendPayout, 0.5)

	mezz := assumption.DefaultLBO(q, quote.ScenarioMezzanineDebt)
	approx(t, "MezzanineFinancing", mezz.MezzanineFinancing, 0.15)
	approx(t, "MezzanineInterestRate", mezz.MezzanineInterestRate, 0.14)
}

func TestLBOInputs_ScenarioConditional(t *testing.T) {
	q := &quote.Quote{Ticker: "COST", MarketCap: floatPtr(1000)}

	base := assumption.LBOInputs(assumption.DefaultLBO(q, quote.ScenarioBaseCase), quote.ScenarioBaseCase)
	if _, ok := base["recapYear"]; ok {
		t.Error("base case must not expose recap sliders")
	}
	if _, ok := base["mezzanineFinancing"]; ok {
		t.Error("base case must not expose mezzanine sliders")
	}

	recap := assumption.LBOInputs(assumption.DefaultLBO(q, quote.ScenarioLeveragedRecap), quote.ScenarioLeveragedRecap)
	ry, ok := recap["recapYear"]
	if !ok {
		t.Fatal("recap scenario missing recapYear slider")
	}
	// The recap can happen no later than the year before exit.
	approx(t, "recapYear max", ry.Max, 4)
}

func TestApplyOverrides_ClampsIntoSliderBounds(t *testing.T) {
	q := &quote.Quote{Ticker: "COST", MarketCap: floatPtr(1000)}
	base := assumption.DefaultLBO(q, quote.ScenarioBaseCase)

	out := assumption.ApplyOverrides(base, &assumption.LBOOverrides{
		DebtFinancing: floatPtr(0.95), // above the 0.8 slider ceiling
		ExitMultiple:  floatPtr(100),  // above the 40x ceiling
		HoldingPeriod: intPtr(10),     // above the 7y ceiling
	}, quote.ScenarioBaseCase)

	approx(t, "DebtFinancing", out.DebtFinancing, 0.8)
	approx(t, "ExitMultiple", out.ExitMultiple, 40)
	if out.HoldingPeriod != 7 {
		t.Errorf("HoldingPeriod = %d, want 7", out.HoldingPeriod)
	}

	// Untouched fields keep their base values; a nil override set is a no-op.
	approx(t, "InterestRate", out.InterestRate, base.InterestRate)
	same := assumption.ApplyOverrides(base, nil, quote.ScenarioBaseCase)
	if same != base {
		t.Error("nil overrides must return the base unchanged")
	}
}

func TestApplyOverrides_RecapYearTracksHoldingPeriod(t *testing.T) {
	q := &quote.Quote{Ticker: "COST", MarketCap: floatPtr(1000)}
	base := assumption.DefaultLBO(q, quote.ScenarioDividendRecap)

	out := assumption.ApplyOverrides(base, &assumption.LBOOverrides{
		HoldingPeriod: intPtr(3),
		RecapYear:     intPtr(5),
	}, quote.ScenarioDividendRecap)

	if out.HoldingPeriod != 3 {
		t.Errorf("HoldingPeriod = %d, want 3", out.HoldingPeriod)
	}
	if out.RecapYear != 2 {
		t.Errorf("RecapYear = %d, want 2 (clamped below exit)", out.RecapYear)
	}
}

func TestApplyOverrides_IgnoresInertScenarioFields(t *testing.T) {
	q := &quote.Quote{Ticker: "COST", MarketCap: floatPtr(1000)}
	base := assumption.DefaultLBO(q, quote.ScenarioBaseCase)

	out := assumption.ApplyOverrides(base, &assumption.LBOOverrides{
		RecapYear:          intPtr(3),
		MezzanineFinancing: floatPtr(0.2),
	}, quote.ScenarioBaseCase)

	if out.RecapYear != 0 || out.MezzanineFinancing != 0 {
		t.Errorf("inert fields were applied: %+v", out)
	}
}

func TestLBOValidate(t *testing.T) {
	ok := assumption.LBO{DebtFinancing: 0.6, HoldingPeriod: 5}
	if err := ok.Validate(quote.ScenarioBaseCase); err != nil {
		t.Errorf("valid base case rejected: %v", err)
	}

	bad := ok
	bad.DebtFinancing = 1.0
	if err := bad.Validate(quote.ScenarioBaseCase); err == nil {
		t.Error("fully debt-funded deal accepted")
	}

	bad = ok
	bad.HoldingPeriod = 2
	if err := bad.Validate(quote.ScenarioBaseCase); err == nil {
		t.Error("two-year hold accepted")
	}

	recap := ok
	recap.RecapYear = 5
	if err := recap.Validate(quote.ScenarioDividendRecap); err == nil {
		t.Error("recap in the exit year accepted")
	}
	recap.RecapYear = 3
	if err := recap.Validate(quote.ScenarioDividendRecap); err != nil {
		t.Errorf("valid recap rejected: %v", err)
	}

	mezz := ok
	mezz.MezzanineFinancing = 0.7
	if err := mezz.Validate(quote.ScenarioMezzanineDebt); err == nil {
		t.Error("mezzanine above total debt accepted")
	}
}
