package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pitchly/pkg/core/analysis"
	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/fetch"
	"pitchly/pkg/core/quote"
	"pitchly/pkg/core/refresh"
	"pitchly/pkg/core/store"
	"pitchly/pkg/core/workflow"
)

// snapshotTTL bounds how old a cached quote may be before the dashboard
// refetches it.
const snapshotTTL = 15 * time.Minute

// Handler assembles the full dashboard payload for a ticker.
type Handler struct {
	Client    *fetch.Client
	Cache     *store.QuoteCache
	Engine    *analysis.Engine
	Refresher *refresh.Refresher
}

// NewHandler creates a dashboard handler.
func NewHandler(client *fetch.Client, cache *store.QuoteCache, engine *analysis.Engine, refresher *refresh.Refresher) *Handler {
	return &Handler{Client: client, Cache: cache, Engine: engine, Refresher: refresher}
}

// Response is the dashboard payload: the resolved quote, its peer set,
// and the generated valuation workflow.
type Response struct {
	Quote    *quote.Quote               `json:"quote"`
	Peers    []*quote.Quote             `json:"peers"`
	Workflow workflow.ValuationWorkflow `json:"workflow"`
}

// HandleDashboard serves GET /api/dashboard?ticker=TSLA&ai=1.
// The ai flag opts into model-generated LBO assumptions; without it the
// domain defaults are used.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
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
	fmt.Printf("[DASHBOARD] Request: %s\n", ticker)

	q, err := h.resolveQuote(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	peers := h.Client.Peers(ctx, q)

	var overrides workflow.OverrideFunc
	if h.Engine != nil && r.URL.Query().Get("ai") == "1" {
		overrides = func(q *quote.Quote, scenarioID string) *assumption.LBOOverrides {
			return h.Engine.GenerateLBOAssumptions(ctx, q, scenarioID)
		}
	}

	wf := workflow.Build(q, peers, overrides)

	if h.Refresher != nil {
		h.Refresher.Track(q)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Quote: q, Peers: peers, Workflow: wf})
}

// resolveQuote serves from the snapshot cache when fresh, otherwise
// fetches live and caches the result.
func (h *Handler) resolveQuote(r *http.Request) (*quote.Quote, error) {
	ctx := r.Context()
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))

	if h.Cache != nil && r.URL.Query().Get("refresh") != "1" {
		if cached, err := h.Cache.Get(ctx, ticker, snapshotTTL); err == nil && cached != nil {
			fmt.Printf("[DASHBOARD] Cache hit for %s\n", ticker)
			return cached, nil
		}
	}

	q, err := h.Client.Quote(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}

	if h.Cache != nil {
		if err := h.Cache.Save(ctx, q); err != nil {
			fmt.Printf("[WARNING] Failed to cache quote for %s: %v\n", ticker, err)
		}
	}
	return q, nil
}
