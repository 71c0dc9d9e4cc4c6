package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"pitchly/pkg/core/export"
	"pitchly/pkg/core/quote"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestWritePeerCSV(t *testing.T) {
	base := &quote.Quote{
		Ticker:        "NVDA",
		CompanyName:   `NVIDIA "The GPU Company" Corp`,
		MarketCap:     floatPtr(4.5e12),
		EBITDA:        floatPtr(7.52e10),
		RevenueGrowth: floatPtr(0.692),
		PERatio:       floatPtr(52.137),
	}
	peer := &quote.Quote{
		Ticker:      "AMD",
		CompanyName: "Advanced Micro Devices",
		// everything else missing
	}

	var buf bytes.Buffer
	if err := export.WritePeerCSV(&buf, base, []*quote.Quote{peer}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	if rows[0][0] != "Company Name" || rows[0][6] != "EV/EBITDA" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	nvda := rows[1]
	if nvda[1] != "NVDA" {
		t.Errorf("base row should come first: %v", nvda)
	}
	if !strings.Contains(nvda[0], `"The GPU Company"`) {
		t.Errorf("quoted company name mangled: %q", nvda[0])
	}
	if nvda[4] != "69.20" {
		t.Errorf("revenue growth = %q, want percent with two decimals", nvda[4])
	}
	if nvda[5] != "52.14" {
		t.Errorf("P/E = %q", nvda[5])
	}
	// EV/EBITDA derives on the fly: 4.5e12 / 7.52e10.
	if nvda[6] != "59.84" {
		t.Errorf("EV/EBITDA = %q", nvda[6])
	}

	amd := rows[2]
	for _, col := range []int{2, 3, 4, 5, 6} {
		if amd[col] != "N/A" {
			t.Errorf("missing field col %d = %q, want N/A", col, amd[col])
		}
	}
}

func TestPeerCSVFilename(t *testing.T) {
	if got := export.PeerCSVFilename("TSLA"); got != "TSLA_peer_comparison.csv" {
		t.Errorf("filename = %q", got)
	}
}
