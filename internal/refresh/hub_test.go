package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/bitbites/canteen/internal/entity"
)

func newTestHub(buffer int) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
	}
}

func drain(sub *Subscription) int {
	n := 0
	for {
		select {
		case <-sub.C:
			n++
		default:
			return n
		}
	}
}

func TestNotifyReachesMatchingScopes(t *testing.T) {
	hub := newTestHub(4)

	staff := hub.Subscribe(context.Background(), Scope{Location: "medical"})
	defer staff.Close()
	otherSite := hub.Subscribe(context.Background(), Scope{Location: "bitbites"})
	defer otherSite.Close()
	owner := hub.Subscribe(context.Background(), Scope{OwnerID: "user-1"})
	defer owner.Close()
	all := hub.Subscribe(context.Background(), Scope{})
	defer all.Close()

	hub.Notify(Event{OrderID: 1, Location: "medical", OwnerID: "user-1", Status: entity.StatusPending})

	if got := drain(staff); got != 1 {
		t.Fatalf("staff signals = %d, want 1", got)
	}
	if got := drain(otherSite); got != 0 {
		t.Fatalf("other site signals = %d, want 0", got)
	}
	if got := drain(owner); got != 1 {
		t.Fatalf("owner signals = %d, want 1", got)
	}
	if got := drain(all); got != 1 {
		t.Fatalf("unscoped signals = %d, want 1", got)
	}
}

func TestScopeRequiresAllSetFieldsToMatch(t *testing.T) {
	scope := Scope{Location: "medical", OwnerID: "user-1"}

	if !scope.Matches(Event{Location: "medical", OwnerID: "user-1"}) {
		t.Fatal("fully matching event rejected")
	}
	if scope.Matches(Event{Location: "medical", OwnerID: "user-2"}) {
		t.Fatal("owner mismatch accepted")
	}
	if scope.Matches(Event{Location: "bitbites", OwnerID: "user-1"}) {
		t.Fatal("location mismatch accepted")
	}
}

func TestNotifyNeverBlocksOnFullBuffer(t *testing.T) {
	hub := newTestHub(1)
	sub := hub.Subscribe(context.Background(), Scope{})
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Notify(Event{OrderID: int64(i), Location: "medical"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a saturated subscriber")
	}

	// A single pending signal is all a refresh conveys.
	if got := drain(sub); got != 1 {
		t.Fatalf("pending signals = %d, want 1", got)
	}
}

func TestCloseDetachesSubscription(t *testing.T) {
	hub := newTestHub(1)
	sub := hub.Subscribe(context.Background(), Scope{})

	sub.Close()
	sub.Close() // idempotent

	if got := hub.Subscribers(); got != 0 {
		t.Fatalf("subscribers after Close = %d, want 0", got)
	}

	hub.Notify(Event{OrderID: 1, Location: "medical"})
	if got := drain(sub); got != 0 {
		t.Fatalf("closed subscription still received %d signals", got)
	}
}

func TestContextCancelTearsDownSubscription(t *testing.T) {
	hub := newTestHub(1)
	ctx, cancel := context.WithCancel(context.Background())
	hub.Subscribe(ctx, Scope{Location: "medical"})

	cancel()

	deadline := time.After(2 * time.Second)
	for hub.Subscribers() != 0 {
		select {
		case <-deadline:
			t.Fatal("subscription not removed after context cancel")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
