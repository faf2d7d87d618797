package order

import (
	"context"
	"testing"

	"github.com/shirwani/chloe-nomura-home/internal/db"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn   func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn   func(ctx context.Context, key string, paths ...string) ([]byte, error)
	existsFn    func(ctx context.Context, key string) (bool, error)
	hsetMultiFn func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn   func(ctx context.Context, key string) (map[string]string, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func testOrder(t *testing.T) domorder.Order {
	t.Helper()
	lines := []domorder.Line{
		{ItemID: "sku-1", Name: "Walnut Nightstand", UnitPrice: 149.99, Quantity: 1},
		{ItemID: "sku-2", Name: "Oak Desk", UnitPrice: 320, Quantity: 1},
	}
	buyer := domorder.Customer{
		Email:           "kai@example.com",
		Name:            "Kai Nomura",
		ShippingAddress: "12 Maple St, Portland OR",
	}
	return domorder.Reconstruct(
		"order-1", "cart-1", buyer,
		lines, domorder.Compute(lines, 25),
		"pay-1", "visa", "CONF-123", 1700000000000,
	)
}
