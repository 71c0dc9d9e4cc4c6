package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// AnalysisRepo persists generated analysis documents (SWOT, memos,
// pitch decks, news digests) keyed by ticker and kind.
type AnalysisRepo struct{}

// NewAnalysisRepo creates a new repository instance.
func NewAnalysisRepo() *AnalysisRepo {
	return &AnalysisRepo{}
}

// AnalysisRecord is one stored analysis document.
type AnalysisRecord struct {
	Ticker    string    `json:"ticker"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	Provider  string    `json:"provider"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Save upserts an analysis document on (ticker, kind).
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS company_analyses (
//	  ticker TEXT,
//	  kind TEXT,
//	  content TEXT,
//	  provider TEXT,
//	  updated_at TIMESTAMPTZ,
//	  PRIMARY KEY (ticker, kind)
//	);
func (r *AnalysisRepo) Save(ctx context.Context, rec *AnalysisRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO company_analyses (ticker, kind, content, provider, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker, kind)
		DO UPDATE SET
			content = EXCLUDED.content,
			provider = EXCLUDED.provider,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := pool.Exec(ctx, query,
		strings.ToUpper(rec.Ticker), rec.Kind, rec.Content, rec.Provider, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// Load retrieves an analysis document for a ticker and kind.
func (r *AnalysisRepo) Load(ctx context.Context, ticker, kind string) (*AnalysisRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT ticker, kind, content, provider, updated_at FROM company_analyses WHERE ticker = $1 AND kind = $2`

	var rec AnalysisRecord
	err := pool.QueryRow(ctx, query, strings.ToUpper(ticker), kind).
		Scan(&rec.Ticker, &rec.Kind, &rec.Content, &rec.Provider, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no %s analysis found for ticker %s", kind, ticker)
		}
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	return &rec, nil
}

// ListKinds returns the kinds of stored analyses for a ticker.
func (r *AnalysisRepo) ListKinds(ctx context.Context, ticker string) ([]string, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT kind FROM company_analyses WHERE ticker = $1 ORDER BY kind`, strings.ToUpper(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, rows.Err()
}
