// Package fetch is the summary-API client. It retrieves raw ticker payloads
// and hands them to the quote builder; all parsing and derivation lives in
// pkg/core/quote. Upstream is rate-limited and occasionally returns HTML
// error pages, so the client retries with exponential backoff and strips
// markup out of error bodies before surfacing them.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pitchly/pkg/core/quote"
)

const (
	defaultRetries      = 3
	defaultInitialDelay = 2 * time.Second
	defaultPeerSpacing  = 250 * time.Millisecond
)

// Client fetches ticker summaries from the market-data API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Retries is the total number of attempts per request. Delay doubles
	// after each failed attempt starting from InitialDelay.
	Retries      int
	InitialDelay time.Duration

	// PeerSpacing is the pause between sequential peer requests.
	PeerSpacing time.Duration
}

// NewClient returns a Client with production retry settings.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		Retries:      defaultRetries,
		InitialDelay: defaultInitialDelay,
		PeerSpacing:  defaultPeerSpacing,
	}
}

// TickerSummary fetches the raw summary payload for one ticker, retrying
// with exponential backoff. The map is ready for quote.BuildQuote.
func (c *Client) TickerSummary(ctx context.Context, ticker string) (map[string]interface{}, error) {
	delay := c.InitialDelay
	retries := c.Retries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		raw, err := c.fetchOnce(ctx, ticker)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if attempt < retries {
			fmt.Printf("[WARNING] API call for %s failed. Retrying in %v... (%d retries left)\n",
				ticker, delay, retries-attempt)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
		}
	}
	fmt.Printf("[FETCH] API call for %s failed after %d attempts\n", ticker, retries)
	return nil, fmt.Errorf("fetch %s: %w", ticker, lastErr)
}

// Quote fetches and builds the canonical quote for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (*quote.Quote, error) {
	raw, err := c.TickerSummary(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return quote.BuildQuote(raw), nil
}

// Peers fetches the curated peer set for a base quote. Requests run
// sequentially with a fixed spacing to stay under upstream rate limits;
// individual failures drop the peer rather than failing the set.
func (c *Client) Peers(ctx context.Context, base *quote.Quote) []*quote.Quote {
	tickers := quote.PeersFor(base.Ticker)
	if len(tickers) == 0 {
		return nil
	}
	fmt.Printf("[FETCH] Fetching %d peers for %s\n", len(tickers), base.Ticker)

	var peers []*quote.Quote
	for i, t := range tickers {
		if i > 0 {
			if err := sleepCtx(ctx, c.PeerSpacing); err != nil {
				return peers
			}
		}
		p, err := c.Quote(ctx, t)
		if err != nil {
			fmt.Printf("[WARNING] Skipping peer %s: %v\n", t, err)
			continue
		}
		peers = append(peers, p)
	}
	return peers
}

func (c *Client) fetchOnce(ctx context.Context, ticker string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/ticker_summary?ticker=%s", c.BaseURL, url.QueryEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", errorMessage(body, resp.StatusCode))
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response from server: %w", err)
	}
	return raw, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// errorMessage extracts a readable message from an upstream error body:
// a JSON {"error": ...} field when present, otherwise the text content of
// an HTML error page.
func errorMessage(body []byte, status int) string {
	var jsonErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &jsonErr); err == nil && jsonErr.Error != "" {
		return jsonErr.Error
	}

	text := string(body)
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		text = doc.Text()
	}
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		return fmt.Sprintf("HTTP error! status: %d", status)
	}
	return text
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
