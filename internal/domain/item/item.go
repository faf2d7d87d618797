package item

import (
	"fmt"
	"time"
)

// Status is the sale lifecycle state of an inventory item.
type Status string

const (
	// StatusAvailable means the item can be added to carts and purchased.
	StatusAvailable Status = "available"
	// StatusPending means the item sits in an in-flight checkout.
	StatusPending Status = "pending"
	// StatusSold means the item has been purchased.
	StatusSold Status = "sold"
	// StatusUnlisted hides the item from the storefront without deleting it.
	StatusUnlisted Status = "unlisted"
)

// IsValid checks if the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold, StatusUnlisted:
		return true
	}
	return false
}

// Item is the inventory item aggregate (immutable value object).
type Item struct {
	id            string
	name          string
	description   string
	category      string
	price         float64
	originalPrice float64
	status        Status
	views         int
	likes         int
	images        []string
	createdAt     int64
	updatedAt     int64
}

// New validates and creates an Item. ID and name are required, price must
// not be negative, an empty status defaults to available. The original
// price is kept only when it exceeds the current price (a real markdown);
// otherwise it is dropped to zero.
func New(
	id, name, description, category string,
	price, originalPrice float64,
	status Status, images []string,
) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("item id is required")
	}
	if name == "" {
		return Item{}, fmt.Errorf("item name is required")
	}
	if price < 0 {
		return Item{}, fmt.Errorf("price must not be negative")
	}
	if status == "" {
		status = StatusAvailable
	}
	if !status.IsValid() {
		return Item{}, fmt.Errorf("invalid status: %q", status)
	}
	if originalPrice <= price {
		originalPrice = 0
	}

	now := time.Now().UnixMilli()
	return Item{
		id:            id,
		name:          name,
		description:   description,
		category:      category,
		price:         price,
		originalPrice: originalPrice,
		status:        status,
		images:        cloneStrings(images),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(
	id, name, description, category string,
	price, originalPrice float64,
	status Status, views, likes int, images []string,
	createdAt, updatedAt int64,
) Item {
	if status == "" {
		status = StatusAvailable
	}
	return Item{
		id:            id,
		name:          name,
		description:   description,
		category:      category,
		price:         price,
		originalPrice: originalPrice,
		status:        status,
		views:         views,
		likes:         likes,
		images:        images,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the item identifier (SKU).
func (i Item) ID() string { return i.id }

// Name returns the display name.
func (i Item) Name() string { return i.name }

// Description returns the item description.
func (i Item) Description() string { return i.description }

// Category returns the category name, possibly empty.
func (i Item) Category() string { return i.category }

// Price returns the current price in dollars.
func (i Item) Price() float64 { return i.price }

// OriginalPrice returns the pre-markdown price, zero when the item is not
// marked down.
func (i Item) OriginalPrice() float64 { return i.originalPrice }

// Status returns the sale lifecycle state.
func (i Item) Status() Status { return i.status }

// Views returns the product page view counter.
func (i Item) Views() int { return i.views }

// Likes returns the like counter.
func (i Item) Likes() int { return i.likes }

// Images returns the image URL list.
func (i Item) Images() []string { return i.images }

// CreatedAt returns the creation time in unix milliseconds.
func (i Item) CreatedAt() int64 { return i.createdAt }

// UpdatedAt returns the last modification time in unix milliseconds.
func (i Item) UpdatedAt() int64 { return i.updatedAt }

// IsAvailable reports whether the item can be carted and sold.
func (i Item) IsAvailable() bool { return i.status == StatusAvailable }

// WithStatus returns a copy with the given status and a fresh updatedAt.
func (i Item) WithStatus(s Status) Item {
	c := i
	c.status = s
	c.updatedAt = time.Now().UnixMilli()
	return c
}

// WithCategory returns a copy with the given category and a fresh updatedAt.
func (i Item) WithCategory(category string) Item {
	c := i
	c.category = category
	c.updatedAt = time.Now().UnixMilli()
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
