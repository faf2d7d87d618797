// Package cart implements the shopping cart: hydrated cart views, line
// edits with availability checks, and guest-to-user cart promotion.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	"github.com/shirwani/chloe-nomura-home/internal/metrics"
)

// LineView is one cart line joined with its inventory item.
type LineView struct {
	Line     domcart.Line
	Item     item.Item
	Subtotal float64
}

// View is a fully hydrated cart in add order.
type View struct {
	CartID   string
	Lines    []LineView
	Subtotal float64
}

// Service manages shopping carts.
type Service struct {
	carts   Store
	catalog Catalog
}

// New creates a cart service.
func New(carts Store, catalog Catalog) *Service {
	return &Service{carts: carts, catalog: catalog}
}

// Get returns the hydrated cart. A missing cart yields an empty view;
// lines whose item has left the catalog are skipped rather than failing
// the whole cart.
func (s *Service) Get(ctx context.Context, cartID string) (View, error) {
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return View{}, fmt.Errorf("load cart %s: %w", cartID, err)
	}

	view := View{CartID: cartID, Lines: make([]LineView, 0, len(lines))}
	for _, l := range lines {
		it, err := s.catalog.Get(ctx, l.ItemID())
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				continue
			}
			return View{}, fmt.Errorf("hydrate line %s: %w", l.ItemID(), err)
		}
		subtotal := it.Price() * float64(l.Quantity())
		view.Lines = append(view.Lines, LineView{Line: l, Item: it, Subtotal: subtotal})
		view.Subtotal += subtotal
	}

	sort.Slice(view.Lines, func(i, j int) bool {
		a, b := view.Lines[i].Line, view.Lines[j].Line
		if a.AddedAt() != b.AddedAt() {
			return a.AddedAt() < b.AddedAt()
		}
		return a.ItemID() < b.ItemID()
	})
	return view, nil
}

// AddLine puts an item into the cart. The item must exist and be
// available; adding an item already in the cart adds the quantities and
// keeps the original add time.
func (s *Service) AddLine(ctx context.Context, cartID, itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("add %d of %s: %w", quantity, itemID, domain.ErrInvalidQuantity)
	}

	it, err := s.catalog.Get(ctx, itemID)
	if err != nil {
		return fmt.Errorf("resolve item %s: %w", itemID, err)
	}
	if !it.IsAvailable() {
		return fmt.Errorf("item %s is %s: %w", itemID, it.Status(), domain.ErrItemUnavailable)
	}

	line, err := s.findLine(ctx, cartID, itemID)
	if err != nil {
		return err
	}
	if line != nil {
		merged := line.WithQuantity(line.Quantity() + quantity)
		if err := s.carts.SetLine(ctx, cartID, merged); err != nil {
			return fmt.Errorf("update line %s: %w", itemID, err)
		}
		return nil
	}

	fresh, err := domcart.NewLine(itemID, quantity)
	if err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidQuantity)
	}
	if err := s.carts.SetLine(ctx, cartID, fresh); err != nil {
		return fmt.Errorf("add line %s: %w", itemID, err)
	}
	return nil
}

// UpdateQuantity changes a line's quantity in place. Zero removes the
// line, negatives are rejected, and the line must already be in the cart.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("set %d of %s: %w", quantity, itemID, domain.ErrInvalidQuantity)
	}
	if quantity == 0 {
		return s.RemoveLine(ctx, cartID, itemID)
	}

	line, err := s.findLine(ctx, cartID, itemID)
	if err != nil {
		return err
	}
	if line == nil {
		return fmt.Errorf("line %s not in cart %s: %w", itemID, cartID, domain.ErrItemNotFound)
	}

	if err := s.carts.SetLine(ctx, cartID, line.WithQuantity(quantity)); err != nil {
		return fmt.Errorf("update line %s: %w", itemID, err)
	}
	return nil
}

// RemoveLine deletes one line from the cart.
func (s *Service) RemoveLine(ctx context.Context, cartID, itemID string) error {
	if err := s.carts.RemoveLine(ctx, cartID, itemID); err != nil {
		return fmt.Errorf("remove line %s: %w", itemID, err)
	}
	return nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	if err := s.carts.Clear(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart %s: %w", cartID, err)
	}
	return nil
}

// Promote merges a guest cart into a user cart at login: quantities of
// shared items add up, the target cart loses its expiry, and the guest
// cart is deleted. Promoting a cart onto itself just makes it permanent.
func (s *Service) Promote(ctx context.Context, fromCartID, toCartID string) error {
	if fromCartID == toCartID {
		if err := s.carts.Promote(ctx, toCartID); err != nil {
			return fmt.Errorf("persist cart %s: %w", toCartID, err)
		}
		metrics.CartsPromotedTotal.Inc()
		return nil
	}

	source, err := s.carts.Lines(ctx, fromCartID)
	if err != nil {
		return fmt.Errorf("load cart %s: %w", fromCartID, err)
	}
	if len(source) == 0 {
		return fmt.Errorf("cart %s is empty: %w", fromCartID, domain.ErrCartNotFound)
	}

	target, err := s.carts.Lines(ctx, toCartID)
	if err != nil {
		return fmt.Errorf("load cart %s: %w", toCartID, err)
	}
	existing := make(map[string]domcart.Line, len(target))
	for _, l := range target {
		existing[l.ItemID()] = l
	}

	for _, l := range source {
		merged := l
		if prior, ok := existing[l.ItemID()]; ok {
			merged = prior.WithQuantity(prior.Quantity() + l.Quantity())
		}
		if err := s.carts.SetLine(ctx, toCartID, merged); err != nil {
			return fmt.Errorf("merge line %s: %w", l.ItemID(), err)
		}
	}

	if err := s.carts.Promote(ctx, toCartID); err != nil {
		return fmt.Errorf("persist cart %s: %w", toCartID, err)
	}
	if err := s.carts.Clear(ctx, fromCartID); err != nil {
		return fmt.Errorf("drop cart %s: %w", fromCartID, err)
	}

	metrics.CartsPromotedTotal.Inc()
	return nil
}

// findLine returns the cart line for itemID, or nil when absent.
func (s *Service) findLine(ctx context.Context, cartID, itemID string) (*domcart.Line, error) {
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	for _, l := range lines {
		if l.ItemID() == itemID {
			line := l
			return &line, nil
		}
	}
	return nil, nil
}
