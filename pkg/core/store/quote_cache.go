package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pitchly/pkg/core/quote"
)

// QuoteCache stores fetched ticker snapshots.
// Hybrid vault: DB (primary) + file system (fallback/local).
type QuoteCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewQuoteCache creates a new quote cache.
// If pool is nil it falls back to a file-based cache in dir; if dir is
// also empty, a default local cache directory is used.
//
// DB schema assumption:
//
//	CREATE TABLE IF NOT EXISTS quote_snapshots (
//	  ticker TEXT PRIMARY KEY,
//	  data JSONB,
//	  fetched_at TIMESTAMPTZ
//	);
func NewQuoteCache(pool *pgxpool.Pool, dir string) *QuoteCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "quotes")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check QuoteCache dir: %v\n", err)
		}
	}
	return &QuoteCache{pool: pool, fileDir: dir}
}

// snapshotEntry wraps a quote with its cache timestamp for file storage.
type snapshotEntry struct {
	Ticker   string       `json:"ticker"`
	Quote    *quote.Quote `json:"quote"`
	CachedAt time.Time    `json:"cached_at"`
}

// Get returns the cached quote for a ticker, or nil on a miss.
// A non-zero maxAge treats older snapshots as misses.
func (c *QuoteCache) Get(ctx context.Context, ticker string, maxAge time.Duration) (*quote.Quote, error) {
	if c.pool != nil {
		query := `SELECT data, fetched_at FROM quote_snapshots WHERE ticker = $1 LIMIT 1`
		var dataJSON []byte
		var fetchedAt time.Time
		err := c.pool.QueryRow(ctx, query, strings.ToUpper(ticker)).Scan(&dataJSON, &fetchedAt)
		if err != nil {
			return nil, nil // Cache miss
		}
		if maxAge > 0 && time.Since(fetchedAt) > maxAge {
			return nil, nil
		}
		var q quote.Quote
		if err := json.Unmarshal(dataJSON, &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached quote: %w", err)
		}
		return &q, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.tickerPath(ticker), maxAge)
	}

	return nil, nil
}

// Save stores a quote snapshot, upserting on ticker.
func (c *QuoteCache) Save(ctx context.Context, q *quote.Quote) error {
	dataJSON, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO quote_snapshots (ticker, data, fetched_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (ticker)
			DO UPDATE SET
				data = EXCLUDED.data,
				fetched_at = EXCLUDED.fetched_at
		`
		if _, err := c.pool.Exec(ctx, query, strings.ToUpper(q.Ticker), dataJSON, time.Now()); err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
	}

	if c.fileDir != "" {
		entry := snapshotEntry{
			Ticker:   strings.ToUpper(q.Ticker),
			Quote:    q,
			CachedAt: time.Now(),
		}
		fileBytes, _ := json.MarshalIndent(entry, "", "  ")
		if err := os.WriteFile(c.tickerPath(q.Ticker), fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists checks whether a snapshot is cached for the ticker.
func (c *QuoteCache) Exists(ctx context.Context, ticker string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM quote_snapshots WHERE ticker = $1 LIMIT 1`
		var exists int
		if err := c.pool.QueryRow(ctx, query, strings.ToUpper(ticker)).Scan(&exists); err == nil {
			return true
		}
	}

	if c.fileDir != "" {
		if _, err := os.Stat(c.tickerPath(ticker)); err == nil {
			return true
		}
	}

	return false
}

func (c *QuoteCache) tickerPath(ticker string) string {
	safe := strings.ToUpper(strings.ReplaceAll(ticker, string(filepath.Separator), "_"))
	return filepath.Join(c.fileDir, safe+".json")
}

func (c *QuoteCache) loadFromFile(path string, maxAge time.Duration) (*quote.Quote, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var entry snapshotEntry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, err
	}
	if entry.Quote == nil {
		return nil, nil
	}
	if maxAge > 0 && time.Since(entry.CachedAt) > maxAge {
		return nil, nil
	}
	return entry.Quote, nil
}
