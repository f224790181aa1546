// Package refresh keeps staff and client order views in step with the
// store. Consumers subscribe with a scope (site or owner) and receive a
// bare refresh signal whenever a matching order is created or advanced;
// they then re-run their own query. Signals carry no diff, duplicates are
// expected, and delivery is best effort.
package refresh

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/entity"
)

// Event describes an order change for scope matching.
type Event struct {
	OrderID  int64
	Location string
	OwnerID  string
	Status   entity.Status
}

// Scope restricts which events reach a subscription. Empty fields match
// everything; set fields must all match.
type Scope struct {
	Location string
	OwnerID  string
}

// Matches reports whether the event falls inside the scope.
func (s Scope) Matches(ev Event) bool {
	if s.Location != "" && s.Location != ev.Location {
		return false
	}
	if s.OwnerID != "" && s.OwnerID != ev.OwnerID {
		return false
	}
	return true
}

// Subscription is one consumer's handle on the hub. C fires when the
// consumer should re-query; Close must be called on view teardown.
type Subscription struct {
	C chan struct{}

	hub   *Hub
	scope Scope
	once  sync.Once
}

// Close detaches the subscription from the hub.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub fans refresh signals out to scoped subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
	logger *zap.Logger
}

// Module provides the hub to Fx.
var Module = fx.Provide(NewHub)

// NewHub builds a Hub with the configured per-subscriber buffer.
func NewHub(cfg config.Config, logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: cfg.Sync.Buffer,
		logger: logger,
	}
}

// Subscribe registers a consumer. The subscription is torn down when ctx
// ends or when Close is called, whichever comes first.
func (h *Hub) Subscribe(ctx context.Context, scope Scope) *Subscription {
	buffer := h.buffer
	if buffer <= 0 {
		buffer = 1
	}
	sub := &Subscription{
		C:     make(chan struct{}, buffer),
		hub:   h,
		scope: scope,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}
	return sub
}

// Notify delivers a refresh signal to every subscription whose scope
// matches. Delivery never blocks: a subscriber with a full buffer already
// has a pending signal, which is all a refresh conveys.
func (h *Hub) Notify(ev Event) {
	h.mu.Lock()
	targets := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		if sub.scope.Matches(ev) {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.C <- struct{}{}:
		default:
		}
	}

	if h.logger != nil && len(targets) > 0 {
		h.logger.Debug("refresh fan-out",
			zap.Int64("order_id", ev.OrderID),
			zap.String("location", ev.Location),
			zap.Int("subscribers", len(targets)),
		)
	}
}

// Subscribers returns the current subscription count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}
