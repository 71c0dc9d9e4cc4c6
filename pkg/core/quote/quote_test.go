package quote_test

import (
	"math"
	"strings"
	"testing"

	"pitchly/pkg/core/quote"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func rawPayload() map[string]interface{} {
	return map[string]interface{}{
		"ticker":         "NVDA",
		"companyName":    "NVIDIA Corporation",
		"exchange":       "NASDAQ",
		"currentPrice":   185.50,
		"previousClose":  "183.20",
		"marketCap":      "4.5T",
		"revenue":        "130.5B",
		"ebitda":         "75.2B",
		"peRatio":        52.1,
		"psRatio":        34.5,
		"pbRatio":        58.2,
		"revenueGrowth":  69.2, // percent
		"roe":            91.5, // percent
		"taxRate":        13.3, // percent
		"priceChange":    2.4,
		"priceChangePct": 1.31,
		"lastUpdated":    "2026-08-28T15:30:00Z",
	}
}

func TestBuildQuote_Derivations(t *testing.T) {
	q := quote.BuildQuote(rawPayload())

	if q.Ticker != "NVDA" || q.Exchange != "NASDAQ" {
		t.Fatalf("identity fields wrong: %+v", q)
	}
	if q.Domain != quote.DomainTechnology {
		t.Errorf("Domain = %q, want Technology", q.Domain)
	}

	approx(t, "Price", *q.Price, 185.50)
	approx(t, "MarketCap", *q.MarketCap, 4.5e12)
	approx(t, "Revenue", *q.Revenue, 130.5e9)

	// shares = marketCap / price
	approx(t, "Shares", *q.Shares, 4.5e12/185.50)
	// evEbitda = marketCap / ebitda
	approx(t, "EVEBITDA", *q.EVEBITDA, 4.5e12/75.2e9)

	// Whole-number percentages convert to decimals.
	approx(t, "RevenueGrowth", *q.RevenueGrowth, 0.692)
	approx(t, "ROE", *q.ROE, 0.915)
	approx(t, "TaxRate", q.TaxRate, 0.133)
	if q.TaxRateIsAssumed {
		t.Error("reported tax rate must not be flagged as assumed")
	}

	approx(t, "InterestRate", q.InterestRate, quote.DefaultInterestRate)
	if q.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestBuildQuote_LatestPriceFallback(t *testing.T) {
	raw := rawPayload()
	delete(raw, "currentPrice")
	raw["latestPrice"] = "99.9"

	q := quote.BuildQuote(raw)
	approx(t, "Price", *q.Price, 99.9)
}

func TestBuildQuote_AssumedTaxRate(t *testing.T) {
	cases := []struct {
		exchange string
		rate     float64
		country  string
	}{
		{"NASDAQ", 0.21, "the US"},
		{"NYSE", 0.21, "the US"},
		{"TSX", 0.265, "Canada"},
		{"LSE", 0.25, "the UK"},
		{"JPX", 0.306, "Japan"},
		{"UNKNOWN-EX", 0.23, "an estimated region"},
	}
	for _, c := range cases {
		raw := rawPayload()
		delete(raw, "taxRate")
		raw["exchange"] = c.exchange

		q := quote.BuildQuote(raw)
		approx(t, c.exchange+" TaxRate", q.TaxRate, c.rate)
		if !q.TaxRateIsAssumed {
			t.Errorf("%s: missing assumed flag", c.exchange)
		}
		if !strings.Contains(q.TaxRateSource, c.country) {
			t.Errorf("%s: TaxRateSource = %q, want mention of %q", c.exchange, q.TaxRateSource, c.country)
		}
	}
}

func TestBuildQuote_MissingFieldsStayNil(t *testing.T) {
	q := quote.BuildQuote(map[string]interface{}{
		"ticker":   "XXXX",
		"exchange": "NASDAQ",
	})

	if q.Price != nil || q.MarketCap != nil || q.Shares != nil || q.EVEBITDA != nil {
		t.Errorf("missing inputs should stay nil: %+v", q)
	}
	// No market cap or EBITDA: the flat net debt fallback applies.
	approx(t, "NetDebt", q.NetDebt, 5e9)
}

func TestHeuristicNetDebt(t *testing.T) {
	mc, eb := 1000.0, 100.0
	approx(t, "NetDebt", quote.HeuristicNetDebt(&mc, &eb), 1000/(100*0.1))

	neg := -5.0
	approx(t, "NetDebt negative EBITDA", quote.HeuristicNetDebt(&mc, &neg), 5e9)
	approx(t, "NetDebt nil EBITDA", quote.HeuristicNetDebt(&mc, nil), 5e9)
}

func TestRefreshPrice(t *testing.T) {
	q := quote.BuildQuote(rawPayload())
	mcBefore := *q.MarketCap
	sharesBefore := *q.Shares

	q.RefreshPrice(map[string]interface{}{
		"currentPrice":   187.2,
		"priceChange":    1.7,
		"priceChangePct": 0.92,
	})

	approx(t, "Price", *q.Price, 187.2)
	approx(t, "Change", *q.Change, 1.7)
	approx(t, "ChangePercent", *q.ChangePercent, 0.92)

	// Fundamentals are pinned to fetch time.
	approx(t, "MarketCap", *q.MarketCap, mcBefore)
	approx(t, "Shares", *q.Shares, sharesBefore)
}

func TestRefreshPrice_KeepsOldPriceOnBadPayload(t *testing.T) {
	q := quote.BuildQuote(rawPayload())
	q.RefreshPrice(map[string]interface{}{"currentPrice": "N/A"})
	approx(t, "Price", *q.Price, 185.50)
}
