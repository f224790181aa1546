package order

import (
	"time"

	"github.com/bitbites/canteen/internal/entity"
)

// Event types published on the order events topic.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Event is emitted whenever an order is created or advanced. Consumers
// treat it as an invalidation signal keyed by location/owner; the full
// record is always re-read from the store.
type Event struct {
	Type       string        `json:"type"`
	ID         int64         `json:"id"`
	Token      string        `json:"token"`
	Location   string        `json:"location"`
	OwnerID    string        `json:"owner_id,omitempty"`
	Status     entity.Status `json:"status"`
	PrevStatus entity.Status `json:"prev_status,omitempty"`
	Total      float64       `json:"total,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
