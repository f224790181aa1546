package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerEnforcesMinimumInterval(t *testing.T) {
	p := NewPoller(10 * time.Millisecond)
	if p.Interval() != time.Second {
		t.Fatalf("interval = %v, want 1s floor", p.Interval())
	}

	p = NewPoller(15 * time.Second)
	if p.Interval() != 15*time.Second {
		t.Fatalf("interval = %v, want 15s", p.Interval())
	}
}

func TestPollerStopsWhenContextEnds(t *testing.T) {
	p := NewPoller(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		p.Run(ctx, func(context.Context) error { return nil }, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}

func TestPollerKeepsPollingThroughErrors(t *testing.T) {
	p := NewPoller(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls, reported atomic.Int32
	done := make(chan struct{})
	go func() {
		p.Run(ctx,
			func(context.Context) error {
				if calls.Add(1) >= 2 {
					cancel()
				}
				return errors.New("store unavailable")
			},
			func(error) { reported.Add(1) },
		)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	if calls.Load() < 2 {
		t.Fatalf("callback ran %d times, want at least 2 despite errors", calls.Load())
	}
	if reported.Load() < 2 {
		t.Fatalf("onErr ran %d times, want at least 2", reported.Load())
	}
}
