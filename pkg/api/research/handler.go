package research

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pitchly/pkg/core/analysis"
	"pitchly/pkg/core/fetch"
	"pitchly/pkg/core/llm"
	"pitchly/pkg/core/store"
)

// Handler serves AI-generated research documents.
type Handler struct {
	Client *fetch.Client
	Engine *analysis.Engine
	Repo   *store.AnalysisRepo
}

// NewHandler creates a research handler. Repo may be nil when no
// database is configured; documents are then generated per-request.
func NewHandler(client *fetch.Client, engine *analysis.Engine, repo *store.AnalysisRepo) *Handler {
	return &Handler{Client: client, Engine: engine, Repo: repo}
}

type Request struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"companyName"`
	Kind        string `json:"kind"`
	Outline     bool   `json:"outline"` // structured slide outline for pitch decks
}

type Response struct {
	Ticker  string           `json:"ticker"`
	Kind    string           `json:"kind"`
	Content string           `json:"content"`
	Slides  []analysis.Slide `json:"slides,omitempty"`
	Outline []llm.DeckSlide  `json:"outline,omitempty"`
}

var validKinds = map[string]bool{
	analysis.KindSWOT:      true,
	analysis.KindMemo:      true,
	analysis.KindPitchDeck: true,
	analysis.KindNews:      true,
}

// HandleAnalysis serves POST /api/analysis.
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	if !validKinds[req.Kind] {
		http.Error(w, fmt.Sprintf("unknown analysis kind: %s", req.Kind), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		if q, err := h.Client.Quote(ctx, ticker); err == nil && q.CompanyName != "" {
			companyName = q.CompanyName
		} else {
			companyName = ticker
		}
	}

	content, err := h.Engine.Generate(ctx, ticker, companyName, req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := Response{Ticker: ticker, Kind: req.Kind, Content: content}

	if req.Kind == analysis.KindPitchDeck {
		resp.Slides = analysis.ParseSlides(content)
		if req.Outline {
			outline, err := llm.GenerateDeckOutline(ctx, "", companyName, content)
			if err != nil {
				fmt.Printf("[WARNING] Deck outline generation failed for %s: %v\n", ticker, err)
			} else {
				resp.Outline = outline
			}
		}
	}

	h.persist(r, &resp)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// persist stores the document when a database is available. Failures only
// warn; generation already succeeded.
func (h *Handler) persist(r *http.Request, resp *Response) {
	if h.Repo == nil || store.GetPool() == nil {
		return
	}
	rec := &store.AnalysisRecord{
		Ticker:  resp.Ticker,
		Kind:    resp.Kind,
		Content: resp.Content,
	}
	if err := h.Repo.Save(r.Context(), rec); err != nil {
		fmt.Printf("[WARNING] Failed to persist %s analysis for %s: %v\n", resp.Kind, resp.Ticker, err)
	}
}
