package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pitchly/pkg/core/assumption"
	"pitchly/pkg/core/fetch"
	"pitchly/pkg/core/quote"
	"pitchly/pkg/core/store"
	"pitchly/pkg/core/workflow"
)

// Handler recomputes a single model card when the frontend moves a slider.
type Handler struct {
	Client *fetch.Client
	Cache  *store.QuoteCache
}

// NewHandler creates a model recompute handler.
func NewHandler(client *fetch.Client, cache *store.QuoteCache) *Handler {
	return &Handler{Client: client, Cache: cache}
}

type DCFRequest struct {
	Ticker      string         `json:"ticker"`
	Assumptions assumption.DCF `json:"assumptions"`
}

type LBORequest struct {
	Ticker      string         `json:"ticker"`
	Scenario    string         `json:"scenario"`
	Assumptions assumption.LBO `json:"assumptions"`
}

// HandleDCF serves POST /api/model/dcf: rerun the discount model with
// caller-supplied assumptions and return the rebuilt card.
func (h *Handler) HandleDCF(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req DCFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.lookupQuote(r, req.Ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	fmt.Printf("[MODEL] DCF recompute for %s\n", q.Ticker)
	card := workflow.BuildDCFCard(q, req.Assumptions)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

// HandleLBO serves POST /api/model/lbo: rerun a buyout scenario with
// caller-supplied assumptions and return the rebuilt card.
func (h *Handler) HandleLBO(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req LBORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.lookupQuote(r, req.Ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	sc, err := scenarioFor(q.Domain, req.Scenario)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("[MODEL] LBO recompute for %s (%s)\n", q.Ticker, sc.ID)
	card := workflow.BuildLBOCard(q, req.Assumptions, sc)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

// preamble applies CORS headers and absorbs preflight requests.
func preamble(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	return true
}

// lookupQuote prefers the cache since slider moves hit these endpoints
// rapidly; any snapshot age is acceptable for a recompute.
func (h *Handler) lookupQuote(r *http.Request, ticker string) (*quote.Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	ctx := r.Context()
	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, ticker, 24*time.Hour); err == nil && cached != nil {
			return cached, nil
		}
	}

	q, err := h.Client.Quote(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	if h.Cache != nil {
		h.Cache.Save(ctx, q)
	}
	return q, nil
}

func scenarioFor(domain quote.Domain, scenarioID string) (quote.Scenario, error) {
	for _, sc := range quote.ScenariosFor(domain) {
		if sc.ID == scenarioID {
			return sc, nil
		}
	}
	return quote.Scenario{}, fmt.Errorf("unknown scenario %q for domain %s", scenarioID, domain)
}
