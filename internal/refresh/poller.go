package refresh

import (
	"context"
	"time"
)

// Poller is the pull-mode fallback: it invokes the refresh callback on a
// fixed period whether or not anything changed. The callback re-runs the
// consumer's query, so redundant ticks are harmless.
type Poller struct {
	interval time.Duration
}

// NewPoller builds a Poller with the given period. Periods under a second
// are raised to a second to avoid busy re-querying.
func NewPoller(interval time.Duration) *Poller {
	if interval < time.Second {
		interval = time.Second
	}
	return &Poller{interval: interval}
}

// Interval returns the polling period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run invokes fn every interval until ctx ends. Errors from fn are
// reported through the optional onErr callback and polling continues; a
// transient store failure should not stop the view from refreshing.
func (p *Poller) Run(ctx context.Context, fn func(context.Context) error, onErr func(error)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
