package quote

import (
	"fmt"
	"strings"
	"time"
)

// DefaultInterestRate is the blended senior debt rate assumed when no deal
// specific rate is available.
const DefaultInterestRate = 0.085

// defaultNetDebtFallback is the flat net debt assumed when EBITDA is not
// positive and the heuristic cannot run.
const defaultNetDebtFallback = 5_000_000_000.0

// Quote is the canonical per-company snapshot every engine consumes.
// Monetary fields are either finite values or nil, never NaN or partially
// parsed strings; the builder guarantees this. A Quote is immutable after
// construction except for the price fields, which RefreshPrice updates in
// place on the polling cycle.
type Quote struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"companyName"`
	Exchange    string `json:"exchange"`
	Domain      Domain `json:"domain"`
	LogoURL     string `json:"logoUrl,omitempty"`

	Price         *float64 `json:"price"`
	PreviousClose *float64 `json:"previousClose"`
	Open          *float64 `json:"open"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`

	MarketCap     *float64 `json:"marketCap"`
	Revenue       *float64 `json:"revenue"`
	EBITDA        *float64 `json:"ebitda"`
	PERatio       *float64 `json:"peRatio"`
	PSRatio       *float64 `json:"psRatio"`
	PBRatio       *float64 `json:"pbRatio"`
	EVEBITDA      *float64 `json:"evEbitda"`
	ROE           *float64 `json:"roe"`           // decimal
	RevenueGrowth *float64 `json:"revenueGrowth"` // decimal

	TaxRate          float64 `json:"taxRate"` // decimal
	TaxRateIsAssumed bool    `json:"taxRateIsAssumed"`
	TaxRateSource    string  `json:"taxRateSource,omitempty"`

	Shares       *float64 `json:"shares"`  // derived: marketCap / price
	NetDebt      float64  `json:"netDebt"` // derived heuristic, see Builder
	InterestRate float64  `json:"interestRate"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// NetDebtEstimator derives a net debt figure from market cap and EBITDA.
// The default is a coarse placeholder, not a modeled balance-sheet number;
// swap in a real strategy when balance-sheet data is wired up.
type NetDebtEstimator func(marketCap, ebitda *float64) float64

// HeuristicNetDebt is the default estimator: marketCap / (ebitda * 0.1) when
// EBITDA is positive, else a flat 5B fallback.
func HeuristicNetDebt(marketCap, ebitda *float64) float64 {
	if Positive(ebitda) && marketCap != nil {
		return *marketCap / (*ebitda * 0.1)
	}
	return defaultNetDebtFallback
}

// Builder assembles canonical Quotes from raw summary-API payloads. It is a
// pure transform over already-fetched JSON; no I/O happens here.
type Builder struct {
	NetDebt NetDebtEstimator
}

// NewBuilder returns a Builder with the default net debt heuristic.
func NewBuilder() *Builder {
	return &Builder{NetDebt: HeuristicNetDebt}
}

// BuildQuote assembles a Quote with the default builder.
func BuildQuote(raw map[string]interface{}) *Quote {
	return NewBuilder().Build(raw)
}

// Build normalizes every field of the raw payload through ParseValue and
// resolves the derived fields: shares, net debt, tax rate, sector, EV/EBITDA.
func (b *Builder) Build(raw map[string]interface{}) *Quote {
	ticker := str(raw, "ticker")
	exchange := str(raw, "exchange")

	price := ParseValue(raw["currentPrice"])
	if price == nil {
		price = ParseValue(raw["latestPrice"])
	}
	marketCap := ParseValue(raw["marketCap"])
	revenue := ParseValue(raw["revenue"])
	ebitda := ParseValue(raw["ebitda"])

	var shares *float64
	if marketCap != nil && Positive(price) {
		s := *marketCap / *price
		shares = &s
	}

	estimator := b.NetDebt
	if estimator == nil {
		estimator = HeuristicNetDebt
	}

	var evEbitda *float64
	if Positive(ebitda) && marketCap != nil {
		ev := *marketCap / *ebitda
		evEbitda = &ev
	}

	q := &Quote{
		Ticker:        ticker,
		CompanyName:   str(raw, "companyName"),
		Exchange:      exchange,
		Domain:        DomainFor(ticker),
		LogoURL:       str(raw, "logoUrl"),
		Price:         price,
		PreviousClose: ParseValue(raw["previousClose"]),
		Open:          ParseValue(raw["open"]),
		Change:        ParseValue(raw["priceChange"]),
		ChangePercent: ParseValue(raw["priceChangePct"]),
		MarketCap:     marketCap,
		Revenue:       revenue,
		EBITDA:        ebitda,
		PERatio:       ParseValue(raw["peRatio"]),
		PSRatio:       ParseValue(raw["psRatio"]),
		PBRatio:       ParseValue(raw["pbRatio"]),
		EVEBITDA:      evEbitda,
		Shares:        shares,
		NetDebt:       estimator(marketCap, ebitda),
		InterestRate:  DefaultInterestRate,
		LastUpdated:   parseTimestamp(raw["lastUpdated"]),
	}

	// API percentages arrive as whole numbers; engines work in decimals.
	if g := ParseValue(raw["revenueGrowth"]); g != nil {
		dec := *g / 100
		q.RevenueGrowth = &dec
	}
	// The feed reports roe as a whole-number percent too; the dividend
	// model multiplies ROE by retention directly, so it must be converted
	// here once and never rescaled downstream.
	if roe := ParseValue(raw["roe"]); roe != nil {
		dec := *roe / 100
		q.ROE = &dec
	}

	// Tax rate: prefer the reported effective rate, else assume the listing
	// venue's statutory rate and flag the assumption for the commentary layer.
	if rate := ParseValue(raw["taxRate"]); rate != nil {
		q.TaxRate = *rate / 100
	} else {
		info := StatutoryTax(exchange)
		q.TaxRate = info.Rate
		q.TaxRateIsAssumed = true
		q.TaxRateSource = fmt.Sprintf(" (Assumed for %s)", info.Country)
	}

	return q
}

// RefreshPrice applies a realtime polling update: only price, change and
// changePercent move; every other field keeps its fetch-time value.
func (q *Quote) RefreshPrice(raw map[string]interface{}) {
	if p := ParseValue(raw["currentPrice"]); p != nil {
		q.Price = p
	} else if p := ParseValue(raw["latestPrice"]); p != nil {
		q.Price = p
	}
	if c := ParseValue(raw["priceChange"]); c != nil {
		q.Change = c
	}
	if cp := ParseValue(raw["priceChangePct"]); cp != nil {
		q.ChangePercent = cp
	}
	q.LastUpdated = time.Now()
}

func str(raw map[string]interface{}, key string) string {
	if s, ok := raw[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func parseTimestamp(v interface{}) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
