package cart

import (
	"fmt"
	"time"
)

// Line is one item entry in a shopping cart (immutable value object).
// Furniture pieces are mostly one of a kind, so quantity usually stays 1.
type Line struct {
	itemID   string
	quantity int
	addedAt  int64
}

// NewLine validates and creates a cart line.
func NewLine(itemID string, quantity int) (Line, error) {
	if itemID == "" {
		return Line{}, fmt.Errorf("item id is required")
	}
	if quantity < 1 {
		return Line{}, fmt.Errorf("quantity must be at least 1")
	}
	return Line{
		itemID:   itemID,
		quantity: quantity,
		addedAt:  time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Line without validation (storage hydration).
func Reconstruct(itemID string, quantity int, addedAt int64) Line {
	return Line{itemID: itemID, quantity: quantity, addedAt: addedAt}
}

// ItemID returns the inventory item id.
func (l Line) ItemID() string { return l.itemID }

// Quantity returns the line quantity.
func (l Line) Quantity() int { return l.quantity }

// AddedAt returns when the line entered the cart, unix milliseconds.
func (l Line) AddedAt() int64 { return l.addedAt }

// WithQuantity returns a copy with the given quantity.
func (l Line) WithQuantity(q int) Line {
	c := l
	c.quantity = q
	return c
}
