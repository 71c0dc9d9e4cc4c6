package valuation

import (
	"fmt"
	"math"
	"sort"

	"pitchly/pkg/core/quote"
)

// Multiple names, in presentation order.
const (
	MultiplePE       = "P/E"
	MultipleEVEBITDA = "EV/EBITDA"
	MultiplePS       = "P/S"
)

// Multiples lists the comparison axes in presentation order.
var Multiples = []string{MultiplePE, MultipleEVEBITDA, MultiplePS}

// Position of one company's multiple relative to the peer interquartile
// range.
type Position string

const (
	PositionPremium  Position = "premium"
	PositionDiscount Position = "discount"
	PositionInLine   Position = "in-line"
)

// Quartiles over a peer-group multiple. Nil fields mean the group was too
// small to rank.
type Quartiles struct {
	Q1     *float64 `json:"q1"`
	Median *float64 `json:"median"`
	Q3     *float64 `json:"q3"`
}

// PeerComparison is the relative-valuation output for one base company
// against its peer set.
type PeerComparison struct {
	BaseTicker          string                         `json:"baseTicker"`
	PeerTickers         []string                       `json:"peers"`
	InterquartileRanges map[string]Quartiles           `json:"interquartileRanges"`
	Positions           map[string]map[string]Position `json:"positions"`
	Badge               string                         `json:"badge"`
	Commentary          string                         `json:"commentary"`
}

// ComparePeers ranks the base quote's valuation multiples against its peers.
// EV/EBITDA and P/S are recomputed from market cap so every company is
// measured the same way regardless of what the data source reported. With
// fewer than four usable observations on a multiple the quartiles stay nil
// and everyone is treated as in line.
func ComparePeers(base *quote.Quote, peers []*quote.Quote) PeerComparison {
	res := PeerComparison{
		BaseTicker:          base.Ticker,
		PeerTickers:         []string{},
		InterquartileRanges: map[string]Quartiles{},
		Positions:           map[string]map[string]Position{},
	}
	if len(peers) == 0 {
		res.Badge = "Limited Data"
		res.Commentary = fmt.Sprintf("Peer data could not be automatically resolved for %s. Comparison is unavailable.", base.Ticker)
		return res
	}

	all := append([]*quote.Quote{base}, peers...)
	for _, p := range peers {
		res.PeerTickers = append(res.PeerTickers, p.Ticker)
	}

	values := make(map[string][]*float64, len(Multiples))
	for _, c := range all {
		values[MultiplePE] = append(values[MultiplePE], c.PERatio)
		values[MultipleEVEBITDA] = append(values[MultipleEVEBITDA], impliedEVEBITDA(c))
		values[MultiplePS] = append(values[MultiplePS], impliedPS(c))
	}

	for _, m := range Multiples {
		res.InterquartileRanges[m] = computeQuartiles(values[m])
	}

	for i, c := range all {
		pos := make(map[string]Position, len(Multiples))
		for _, m := range Multiples {
			pos[m] = classifyPosition(values[m][i], res.InterquartileRanges[m])
		}
		res.Positions[c.Ticker] = pos
	}

	premium, discount := 0, 0
	for _, p := range res.Positions[base.Ticker] {
		switch p {
		case PositionPremium:
			premium++
		case PositionDiscount:
			discount++
		}
	}
	switch {
	case premium > discount:
		res.Badge = "Premium-heavy"
		res.Commentary = fmt.Sprintf("%s trades at a significant premium across key multiples, reflecting strong market sentiment and growth expectations relative to peers.", base.Ticker)
	case discount > premium:
		res.Badge = "Discount-heavy"
		res.Commentary = fmt.Sprintf("%s appears to trade at a discount to its peer group, suggesting potential undervaluation or perceived higher risk.", base.Ticker)
	default:
		res.Badge = "Mixed"
		res.Commentary = fmt.Sprintf("Valuation for %s is mixed compared to peers, trading at a premium on some multiples and a discount on others.", base.Ticker)
	}
	return res
}

func impliedEVEBITDA(c *quote.Quote) *float64 {
	if quote.Positive(c.EBITDA) && c.MarketCap != nil {
		v := *c.MarketCap / *c.EBITDA
		return &v
	}
	return nil
}

func impliedPS(c *quote.Quote) *float64 {
	if quote.Positive(c.Revenue) && c.MarketCap != nil {
		v := *c.MarketCap / *c.Revenue
		return &v
	}
	return nil
}

// computeQuartiles uses floor indexing over the sorted positive values, so
// quartiles are always actual observations rather than interpolations.
func computeQuartiles(values []*float64) Quartiles {
	var sorted []float64
	for _, v := range values {
		if v != nil && !math.IsInf(*v, 0) && !math.IsNaN(*v) && *v > 0 {
			sorted = append(sorted, *v)
		}
	}
	if len(sorted) < 4 {
		return Quartiles{}
	}
	sort.Float64s(sorted)
	n := float64(len(sorted))
	q1 := sorted[int(math.Floor(n*0.25))]
	median := sorted[int(math.Floor(n*0.5))]
	q3 := sorted[int(math.Floor(n*0.75))]
	return Quartiles{Q1: &q1, Median: &median, Q3: &q3}
}

func classifyPosition(v *float64, q Quartiles) Position {
	if v == nil || q.Q1 == nil || q.Q3 == nil {
		return PositionInLine
	}
	if *v > *q.Q3*1.1 {
		return PositionPremium
	}
	if *v < *q.Q1*0.9 {
		return PositionDiscount
	}
	return PositionInLine
}
