package user

import (
	"context"
	"testing"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/db"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn       func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn    func(ctx context.Context, key string) (map[string]string, error)
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setFn        func(ctx context.Context, key string, value []byte) error
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	existsFn     func(ctx context.Context, key string) (bool, error)
	delFn        func(ctx context.Context, key string) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, 30*time.Minute)
	return repo, ms
}

func testUser(t *testing.T) domuser.User {
	t.Helper()
	return domuser.Reconstruct(
		"user-1", "Kai", "Nomura", "kai@example.com", "555-0101",
		"deadbeef", domuser.TypeCustomer, 1700000000000,
	)
}
