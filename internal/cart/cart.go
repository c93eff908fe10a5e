package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the session-scoped aggregate of lines. Lines keep insertion order;
// mutations funnel through the methods so the merge and removal rules hold.
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart returns an empty cart bound to the session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID}
}

// Add merges the line into the cart. When a line with the same key already
// exists its quantity grows by the incoming quantity and the existing unit
// price is kept; otherwise the line is appended as-is.
func (c *Cart) Add(line Line) {
	for i := range c.Lines {
		if c.Lines[i].Key == line.Key {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// A value of zero or less removes the line. Returns false when no line
// carries the key.
func (c *Cart) UpdateQuantity(key string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].Key != key {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes the line with the given key. Removing an absent key is a
// no-op.
func (c *Cart) Remove(key string) {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Find returns the line with the given key, or nil.
func (c *Cart) Find(key string) *Line {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			return &c.Lines[i]
		}
	}
	return nil
}

// TotalPrice sums unit price times quantity across all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
