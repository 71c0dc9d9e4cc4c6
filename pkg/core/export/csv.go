// Package export renders dashboard data as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"pitchly/pkg/core/quote"
)

var peerCSVHeader = []string{
	"Company Name", "Ticker", "Market Cap (USD)", "EBITDA (USD)",
	"Revenue Growth (%)", "P/E Ratio", "EV/EBITDA",
}

// WritePeerCSV writes the peer-comparison table for a base quote and its
// peers. The base company is the first data row. Missing values render as
// N/A, matching the dashboard's convention.
func WritePeerCSV(w io.Writer, base *quote.Quote, peers []*quote.Quote) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(peerCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range append([]*quote.Quote{base}, peers...) {
		var evEbitda *float64
		if quote.Positive(c.EBITDA) && c.MarketCap != nil {
			v := *c.MarketCap / *c.EBITDA
			evEbitda = &v
		}
		row := []string{
			c.CompanyName,
			c.Ticker,
			rawOrNA(c.MarketCap),
			rawOrNA(c.EBITDA),
			scaledOrNA(c.RevenueGrowth, 100),
			fixedOrNA(c.PERatio),
			fixedOrNA(evEbitda),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", c.Ticker, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// PeerCSVFilename names the download for a ticker.
func PeerCSVFilename(ticker string) string {
	return fmt.Sprintf("%s_peer_comparison.csv", ticker)
}

func rawOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%v", *v)
}

func scaledOrNA(v *float64, scale float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v*scale)
}

func fixedOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
