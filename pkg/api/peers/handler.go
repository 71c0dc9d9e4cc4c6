package peers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"pitchly/pkg/core/export"
	"pitchly/pkg/core/fetch"
	"pitchly/pkg/core/quote"
	"pitchly/pkg/core/store"
)

// Handler serves peer-comparison exports.
type Handler struct {
	Client *fetch.Client
	Cache  *store.QuoteCache
}

// NewHandler creates a peers handler.
func NewHandler(client *fetch.Client, cache *store.QuoteCache) *Handler {
	return &Handler{Client: client, Cache: cache}
}

// HandleCSV serves GET /api/peers/csv?ticker=TSLA as a CSV download of
// the base company and its resolved peer set.
func (h *Handler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		http.Error(w, "ticker query parameter is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	var q *quote.Quote
	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, ticker, 24*time.Hour); err == nil && cached != nil {
			q = cached
		}
	}
	if q == nil {
		fetched, err := h.Client.Quote(ctx, ticker)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to fetch quote for %s: %v", ticker, err), http.StatusBadGateway)
			return
		}
		q = fetched
	}

	peerQuotes := h.Client.Peers(ctx, q)

	fmt.Printf("[PEERS] Exporting CSV for %s (%d peers)\n", ticker, len(peerQuotes))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.PeerCSVFilename(ticker)))

	if err := export.WritePeerCSV(w, q, peerQuotes); err != nil {
		fmt.Printf("[WARNING] CSV export failed for %s: %v\n", ticker, err)
	}
}
