package inventory

import (
	"context"
	"testing"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

type categoryCall struct {
	id       string
	category string
}

type statusCall struct {
	id     string
	status item.Status
}

// mockRepo is an in-memory Repository fake. List returns items in seed
// order so tests control the unsorted snapshot the service receives.
type mockRepo struct {
	items map[string]item.Item
	order []string
	likes map[string]map[string]bool
	views map[string]int64

	listErr     error
	getErr      error
	upsertErr   error
	multiErr    error
	deleteErr   error
	statusErr   error
	categoryErr error
	likeErr     error

	multiCalls    int
	lastBatch     []item.Item
	setCategories []categoryCall
	setStatuses   []statusCall
	deleted       []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		items: make(map[string]item.Item),
		likes: make(map[string]map[string]bool),
		views: make(map[string]int64),
	}
}

func (m *mockRepo) seed(items ...item.Item) {
	for _, it := range items {
		if _, ok := m.items[it.ID()]; !ok {
			m.order = append(m.order, it.ID())
		}
		m.items[it.ID()] = it
	}
}

func (m *mockRepo) Upsert(_ context.Context, it item.Item) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	_, existed := m.items[it.ID()]
	m.seed(it)
	return !existed, nil
}

func (m *mockRepo) UpsertMulti(_ context.Context, items []item.Item) error {
	m.multiCalls++
	m.lastBatch = items
	if m.multiErr != nil {
		return m.multiErr
	}
	m.seed(items...)
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (item.Item, error) {
	if m.getErr != nil {
		return item.Item{}, m.getErr
	}
	it, ok := m.items[id]
	if !ok {
		return item.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (m *mockRepo) List(_ context.Context) ([]item.Item, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]item.Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(m.items, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) SetStatus(_ context.Context, id string, status item.Status, _ int64) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.setStatuses = append(m.setStatuses, statusCall{id: id, status: status})
	if it, ok := m.items[id]; ok {
		m.items[id] = it.WithStatus(status)
	}
	return nil
}

func (m *mockRepo) SetCategory(_ context.Context, id, category string, _ int64) error {
	if m.categoryErr != nil {
		return m.categoryErr
	}
	m.setCategories = append(m.setCategories, categoryCall{id: id, category: category})
	if it, ok := m.items[id]; ok {
		m.items[id] = it.WithCategory(category)
	}
	return nil
}

func (m *mockRepo) IncrementViews(_ context.Context, id string) (int64, error) {
	m.views[id]++
	return m.views[id], nil
}

func (m *mockRepo) Liked(_ context.Context, itemID, userID string) (bool, error) {
	if m.likeErr != nil {
		return false, m.likeErr
	}
	return m.likes[itemID][userID], nil
}

func (m *mockRepo) Like(_ context.Context, itemID, userID string) (int64, error) {
	if m.likeErr != nil {
		return 0, m.likeErr
	}
	if m.likes[itemID] == nil {
		m.likes[itemID] = make(map[string]bool)
	}
	m.likes[itemID][userID] = true
	return int64(len(m.likes[itemID])), nil
}

func (m *mockRepo) Unlike(_ context.Context, itemID, userID string) (int64, error) {
	if m.likeErr != nil {
		return 0, m.likeErr
	}
	delete(m.likes[itemID], userID)
	return int64(len(m.likes[itemID])), nil
}

func catalogItem(id, name, description, category string, createdAt int64) item.Item {
	return item.Reconstruct(
		id, name, description, category,
		100, 0, item.StatusAvailable, 0, 0, nil,
		createdAt, createdAt,
	)
}

func mustNewItem(t *testing.T, id, name, description, category string) item.Item {
	t.Helper()
	it, err := item.New(id, name, description, category, 100, 0, "", nil)
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}
