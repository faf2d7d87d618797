package checkout

import (
	"context"
	"fmt"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
)

// mockCarts serves fixed lines and logs retirement calls in order.
type mockCarts struct {
	lines    []domcart.Line
	linesErr error
	ops      []string
}

func (m *mockCarts) Lines(_ context.Context, cartID string) ([]domcart.Line, error) {
	if m.linesErr != nil {
		return nil, m.linesErr
	}
	return m.lines, nil
}

func (m *mockCarts) Promote(_ context.Context, cartID string) error {
	m.ops = append(m.ops, "promote:"+cartID)
	return nil
}

func (m *mockCarts) Clear(_ context.Context, cartID string) error {
	m.ops = append(m.ops, "clear:"+cartID)
	return nil
}

// mockInventory resolves items from a fixed map and records sold marks.
type mockInventory struct {
	items   map[string]item.Item
	sold    []string
	markErr error
}

func (m *mockInventory) Get(_ context.Context, id string) (item.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return item.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (m *mockInventory) MarkSold(_ context.Context, id string) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.sold = append(m.sold, id)
	return nil
}

// mockOrders captures created orders.
type mockOrders struct {
	created   []domorder.Order
	createErr error
}

func (m *mockOrders) Create(_ context.Context, o domorder.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrders) Get(_ context.Context, id string) (domorder.Order, error) {
	for _, o := range m.created {
		if o.ID() == id {
			return o, nil
		}
	}
	return domorder.Order{}, domain.ErrOrderNotFound
}

// sequentialIDs yields id-1, id-2, ... for deterministic order ids.
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func availableItem(id, name string, price float64) item.Item {
	return item.Reconstruct(id, name, "", "", price, 0,
		item.StatusAvailable, 0, 0, nil, 1000, 1000)
}

func pendingItem(id, name string, price float64) item.Item {
	return item.Reconstruct(id, name, "", "", price, 0,
		item.StatusPending, 0, 0, nil, 1000, 1000)
}

func testCustomer() domorder.Customer {
	return domorder.Customer{
		Email:           "kai@example.com",
		Name:            "Kai Nomura",
		ShippingAddress: "12 Maple St, Portland OR",
	}
}
