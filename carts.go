package nomurahome

import (
	"context"
	"fmt"
	"time"
)

// CartService manages shopping carts. Carts are keyed by caller-chosen
// ids: random UUIDs for guests, stable ids for signed-in users.
type CartService struct {
	svc cartUseCase
	obs *observer
}

// Get returns the cart hydrated against the live catalog. Lines whose
// items have been deleted are dropped from the view. An unknown cart id
// is an empty cart, not an error.
func (s *CartService) Get(ctx context.Context, cartID string) (cart Cart, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cart.get", start, err) }()

	view, err := s.svc.Get(ctx, cartID)
	if err != nil {
		return Cart{}, fmt.Errorf("get cart %s: %w", cartID, err)
	}
	return fromCartView(view), nil
}

// AddLine puts quantity units of an available item into the cart,
// merging with an existing line for the same item.
func (s *CartService) AddLine(ctx context.Context, cartID, itemID string, quantity int) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cart.add_line", start, err) }()

	if err = s.svc.AddLine(ctx, cartID, itemID, quantity); err != nil {
		return fmt.Errorf("add line %s: %w", itemID, err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity. Zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cart.update_line", start, err) }()

	if err = s.svc.UpdateQuantity(ctx, cartID, itemID, quantity); err != nil {
		return fmt.Errorf("update line %s: %w", itemID, err)
	}
	return nil
}

// RemoveLine drops an item from the cart. Removing an absent line is a
// no-op.
func (s *CartService) RemoveLine(ctx context.Context, cartID, itemID string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cart.remove_line", start, err) }()

	if err = s.svc.RemoveLine(ctx, cartID, itemID); err != nil {
		return fmt.Errorf("remove line %s: %w", itemID, err)
	}
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartID string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cart.clear", start, err) }()

	if err = s.svc.Clear(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart %s: %w", cartID, err)
	}
	return nil
}

// Promote merges a guest cart into a user cart on login and pins the
// target so it no longer expires. The source cart is emptied.
func (s *CartService) Promote(ctx context.Context, fromCartID, toCartID string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cart.promote", start, err) }()

	if err = s.svc.Promote(ctx, fromCartID, toCartID); err != nil {
		return fmt.Errorf("promote cart %s: %w", fromCartID, err)
	}
	return nil
}
