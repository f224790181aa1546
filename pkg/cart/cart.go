// Package cart holds a customer's in-progress selection before checkout.
// A cart is bound to a single serving site for its whole lifetime; the site
// is chosen before browsing, so lines never mix locations.
package cart

import (
	"errors"
	"sync"
)

var (
	// ErrWrongSite is returned when an item from another site is added.
	ErrWrongSite = errors.New("item belongs to a different site")
	// ErrEmpty is returned when checking out a cart with no lines.
	ErrEmpty = errors.New("cart is empty")
)

// Item is the menu item snapshot a cart line is built from.
type Item struct {
	ID       int64
	Name     string
	Price    float64
	Location string
}

// Line is one item plus its quantity.
type Line struct {
	ItemID   int64
	Name     string
	Price    float64
	Quantity int
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart accumulates lines for one session. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	site  string
	lines map[int64]*Line
	order []int64
}

// New returns an empty cart bound to the given site.
func New(site string) *Cart {
	return &Cart{
		site:  site,
		lines: make(map[int64]*Line),
	}
}

// Site returns the serving site the cart is bound to.
func (c *Cart) Site() string {
	return c.site
}

// Add inserts the item with quantity 1, or increments the existing line.
func (c *Cart) Add(item Item) error {
	if item.Location != c.site {
		return ErrWrongSite
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[item.ID]; ok {
		line.Quantity++
		return nil
	}
	c.lines[item.ID] = &Line{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	}
	c.order = append(c.order, item.ID)
	return nil
}

// UpdateQuantity sets the line's quantity; zero or negative removes it.
// No upper bound is enforced.
func (c *Cart) UpdateQuantity(itemID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(itemID)
		return
	}
	if line, ok := c.lines[itemID]; ok {
		line.Quantity = quantity
	}
}

// Remove deletes the line; removing an absent item is a no-op.
func (c *Cart) Remove(itemID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(itemID)
}

func (c *Cart) removeLocked(itemID int64) {
	if _, ok := c.lines[itemID]; !ok {
		return
	}
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear drops every line but keeps the site binding.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]*Line)
	c.order = nil
}

// ItemCount is the sum of quantities across lines, recomputed on each call.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of line subtotals, recomputed on each call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Checkout returns an immutable snapshot of the lines for order submission.
// The cart is left intact: the caller clears it only after the order is
// accepted, so a failed submission can be retried without re-entry.
func (c *Cart) Checkout() ([]Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return nil, ErrEmpty
	}
	return c.snapshotLocked(), nil
}

func (c *Cart) snapshotLocked() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}
