package peers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pitchly/pkg/api/peers"
	"pitchly/pkg/core/fetch"
)

func TestHandleCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := r.URL.Query().Get("ticker")
		fmt.Fprintf(w, `{
			"ticker": %q,
			"companyName": "Co %s",
			"currentPrice": 50,
			"marketCap": "100B",
			"ebitda": "8B",
			"revenueGrowth": 10,
			"peRatio": 30
		}`, ticker, ticker)
	}))
	defer srv.Close()

	client := fetch.NewClient(srv.URL)
	client.InitialDelay = time.Millisecond
	client.PeerSpacing = 0
	h := peers.NewHandler(client, nil)

	rec := httptest.NewRecorder()
	h.HandleCSV(rec, httptest.NewRequest("GET", "/api/peers/csv?ticker=NVDA", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "NVDA_peer_comparison.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Header + NVDA + its three curated peers.
	if len(lines) != 5 {
		t.Fatalf("got %d CSV rows, want 5:\n%s", len(lines), rec.Body.String())
	}
	if !strings.HasPrefix(lines[1], "Co NVDA,NVDA") {
		t.Errorf("base row = %q", lines[1])
	}
}

func TestHandleCSV_MissingTicker(t *testing.T) {
	h := peers.NewHandler(fetch.NewClient("http://127.0.0.1:0"), nil)

	rec := httptest.NewRecorder()
	h.HandleCSV(rec, httptest.NewRequest("GET", "/api/peers/csv", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
