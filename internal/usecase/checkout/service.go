// Package checkout turns a cart into a recorded sale: it hydrates and
// revalidates every line, computes the order money, persists the order
// with its sold-item ledger, and retires the cart.
package checkout

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	"github.com/shirwani/chloe-nomura-home/internal/metrics"
)

// Service executes checkouts.
type Service struct {
	carts  Carts
	items  Inventory
	orders Orders

	newID func() string
}

// New creates a checkout service.
func New(carts Carts, items Inventory, orders Orders) *Service {
	return &Service{
		carts:  carts,
		items:  items,
		orders: orders,
		newID:  uuid.NewString,
	}
}

// CreateSale checks out a cart. Every line is re-resolved against the
// catalog and must still be available; prices are taken from the catalog
// at checkout time, not from when the line was added. On success the
// items are marked sold and the cart is pinned (TTL dropped) before it
// is cleared, so a slow checkout can never lose the cart mid-flight.
func (s *Service) CreateSale(
	ctx context.Context,
	cartID string, customer domorder.Customer,
	shipping float64, paymentMethod, confirmation string,
) (domorder.Order, error) {
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	if len(lines) == 0 {
		return domorder.Order{}, fmt.Errorf("cart %s is empty: %w", cartID, domain.ErrCartNotFound)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].AddedAt() != lines[j].AddedAt() {
			return lines[i].AddedAt() < lines[j].AddedAt()
		}
		return lines[i].ItemID() < lines[j].ItemID()
	})

	orderLines := make([]domorder.Line, 0, len(lines))
	units := 0
	for _, l := range lines {
		it, err := s.items.Get(ctx, l.ItemID())
		if err != nil {
			return domorder.Order{}, fmt.Errorf("resolve item %s: %w", l.ItemID(), err)
		}
		if !it.IsAvailable() {
			return domorder.Order{}, fmt.Errorf(
				"item %s is %s: %w", it.ID(), it.Status(), domain.ErrItemUnavailable)
		}
		orderLines = append(orderLines, domorder.Line{
			ItemID:    it.ID(),
			Name:      it.Name(),
			UnitPrice: it.Price(),
			Quantity:  l.Quantity(),
		})
		units += l.Quantity()
	}

	o, err := domorder.New(
		s.newID(), cartID, customer,
		orderLines, shipping,
		s.newID(), paymentMethod, confirmation,
	)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("build order: %w", err)
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return domorder.Order{}, fmt.Errorf("record order %s: %w", o.ID(), err)
	}

	for _, l := range orderLines {
		if err := s.items.MarkSold(ctx, l.ItemID); err != nil {
			return domorder.Order{}, fmt.Errorf("mark sold %s: %w", l.ItemID, err)
		}
	}

	if err := s.carts.Promote(ctx, cartID); err != nil {
		return domorder.Order{}, fmt.Errorf("pin cart %s: %w", cartID, err)
	}
	if err := s.carts.Clear(ctx, cartID); err != nil {
		return domorder.Order{}, fmt.Errorf("retire cart %s: %w", cartID, err)
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.ItemsSoldTotal.Add(float64(units))
	return o, nil
}

// Order returns a recorded sale by id.
func (s *Service) Order(ctx context.Context, id string) (domorder.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("load order %s: %w", id, err)
	}
	return o, nil
}
