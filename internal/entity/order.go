package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Order is a submitted customer order stored in the relational database.
// Its line items are immutable after creation; only Status and UpdatedAt
// change afterwards.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID          int64        `bun:",pk,autoincrement"`
	Token       string       `bun:"token,notnull"`
	Location    string       `bun:"location,notnull"`
	Total       float64      `bun:"total,notnull"`
	Status      Status       `bun:"status,notnull"`
	ClientName  string       `bun:"client_name,notnull"`
	ClientPhone string       `bun:"client_phone,nullzero"`
	TableNumber string       `bun:"table_number,nullzero"`
	OwnerID     string       `bun:"owner_id,nullzero"`
	CreatedAt   time.Time    `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `bun:"updated_at,nullzero"`
	Lines       []*OrderLine `bun:"rel:has-many,join:id=order_id"`
}

// OrderLine is one menu item snapshot within an order. Name and Price are
// copied from the menu item at checkout so later catalog edits do not
// rewrite order history.
type OrderLine struct {
	bun.BaseModel `bun:"table:order_lines,alias:ol"`

	ID       int64   `bun:",pk,autoincrement"`
	OrderID  int64   `bun:"order_id,notnull"`
	ItemID   int64   `bun:"item_id,notnull"`
	Name     string  `bun:"name,notnull"`
	Price    float64 `bun:"price,notnull"`
	Quantity int     `bun:"quantity,notnull"`
}

// Subtotal is the line's contribution to the order total.
func (l *OrderLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
