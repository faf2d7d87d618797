package cart

import (
	"context"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// mockCarts is an in-memory Store fake recording persistence calls.
type mockCarts struct {
	lines    map[string]map[string]domcart.Line
	linesErr error
	setErr   error

	promoted []string
	cleared  []string
}

func newMockCarts() *mockCarts {
	return &mockCarts{lines: make(map[string]map[string]domcart.Line)}
}

func (m *mockCarts) seed(cartID string, ls ...domcart.Line) {
	if m.lines[cartID] == nil {
		m.lines[cartID] = make(map[string]domcart.Line)
	}
	for _, l := range ls {
		m.lines[cartID][l.ItemID()] = l
	}
}

func (m *mockCarts) SetLine(_ context.Context, cartID string, line domcart.Line) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.seed(cartID, line)
	return nil
}

func (m *mockCarts) Lines(_ context.Context, cartID string) ([]domcart.Line, error) {
	if m.linesErr != nil {
		return nil, m.linesErr
	}
	out := make([]domcart.Line, 0, len(m.lines[cartID]))
	for _, l := range m.lines[cartID] {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockCarts) RemoveLine(_ context.Context, cartID, itemID string) error {
	if m.lines[cartID] == nil {
		return domain.ErrCartNotFound
	}
	delete(m.lines[cartID], itemID)
	return nil
}

func (m *mockCarts) Clear(_ context.Context, cartID string) error {
	delete(m.lines, cartID)
	m.cleared = append(m.cleared, cartID)
	return nil
}

func (m *mockCarts) Promote(_ context.Context, cartID string) error {
	if len(m.lines[cartID]) == 0 {
		return domain.ErrCartNotFound
	}
	m.promoted = append(m.promoted, cartID)
	return nil
}

// mockCatalog is a fixed item lookup.
type mockCatalog struct {
	items map[string]item.Item
	err   error
	calls int
}

func (m *mockCatalog) Get(_ context.Context, id string) (item.Item, error) {
	m.calls++
	if m.err != nil {
		return item.Item{}, m.err
	}
	it, ok := m.items[id]
	if !ok {
		return item.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func availableItem(id string, price float64) item.Item {
	return item.Reconstruct(id, "Item "+id, "", "", price, 0,
		item.StatusAvailable, 0, 0, nil, 1000, 1000)
}

func soldItem(id string, price float64) item.Item {
	return item.Reconstruct(id, "Item "+id, "", "", price, 0,
		item.StatusSold, 0, 0, nil, 1000, 1000)
}
