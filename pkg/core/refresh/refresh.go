// Package refresh keeps the active quote's price current. A cron job polls
// the summary API every 30 seconds and applies a price-only update; the
// fundamental fields stay pinned to their fetch-time values so valuation
// models do not drift mid-session.
package refresh

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"pitchly/pkg/core/fetch"
	"pitchly/pkg/core/quote"
)

// DefaultSchedule fires every 30 seconds.
const DefaultSchedule = "*/30 * * * * *"

// Refresher polls the summary API for the tracked quote.
type Refresher struct {
	cron   *cron.Cron
	client *fetch.Client

	mu      sync.Mutex
	tracked *quote.Quote

	// OnUpdate, when set, runs after each successful price apply.
	OnUpdate func(q *quote.Quote)
}

// New builds a Refresher on the given API client.
func New(client *fetch.Client) *Refresher {
	return &Refresher{
		cron:   cron.New(cron.WithSeconds()),
		client: client,
	}
}

// Track switches the refresher to a new quote. A nil quote stops polling
// work without stopping the scheduler.
func (r *Refresher) Track(q *quote.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked = q
}

// Start registers the polling job and starts the scheduler.
func (r *Refresher) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := r.cron.AddFunc(schedule, func() { r.poll(ctx) }); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	r.cron.Start()
	fmt.Printf("[REFRESH] Price refresher started (%s)\n", schedule)
	return nil
}

// Stop stops the scheduler gracefully.
func (r *Refresher) Stop() {
	r.cron.Stop()
	fmt.Printf("[REFRESH] Price refresher stopped\n")
}

// RefreshNow runs one poll immediately, outside the schedule.
func (r *Refresher) RefreshNow(ctx context.Context) {
	r.poll(ctx)
}

func (r *Refresher) poll(ctx context.Context) {
	r.mu.Lock()
	q := r.tracked
	r.mu.Unlock()
	if q == nil {
		return
	}

	raw, err := r.client.TickerSummary(ctx, q.Ticker)
	if err != nil {
		fmt.Printf("[WARNING] Price refresh for %s failed: %v\n", q.Ticker, err)
		return
	}

	r.mu.Lock()
	// The tracked quote may have switched while the fetch was in flight;
	// a stale payload must not touch the new ticker.
	if r.tracked != q {
		r.mu.Unlock()
		return
	}
	q.RefreshPrice(raw)
	r.mu.Unlock()

	if r.OnUpdate != nil {
		r.OnUpdate(q)
	}
}
