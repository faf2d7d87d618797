package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirwani/chloe-nomura-home/internal/db"
	"github.com/shirwani/chloe-nomura-home/internal/domain"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// store is the consumer interface for inventory items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the inventory repositories consumed by the inventory,
// search and checkout services.
type Repo struct {
	store store
}

// New creates an inventory repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates an item. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, it item.Item) (bool, error) {
	key := itemKey(it.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, itemToHash(it)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// UpsertMulti stores multiple items in a single pipelined round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, items []item.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]db.HashSetItem, len(items))
	for i, it := range items {
		rows[i] = db.HashSetItem{Key: itemKey(it.ID()), Fields: itemToHash(it)}
	}

	if err := r.store.HSetMulti(ctx, rows); err != nil {
		return fmt.Errorf("hset multi %d items: %w", len(items), err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (item.Item, error) {
	key := itemKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return item.Item{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		// HGETALL on a missing key yields an empty map, not an error.
		return item.Item{}, domain.ErrItemNotFound
	}
	return itemFromHash(id, m)
}

// List returns every item in the catalog.
func (r *Repo) List(ctx context.Context) ([]item.Item, error) {
	keys, err := r.store.Scan(ctx, itemKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	items := make([]item.Item, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		it, err := itemFromHash(strings.TrimPrefix(keys[i], itemKeyPrefix), m)
		if err != nil {
			return nil, fmt.Errorf("hydrate %s: %w", keys[i], err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Delete removes an item and its per-user likes.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := itemKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.Del(ctx, likesKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", likesKey(id), err)
	}
	return nil
}

// SetStatus updates only the status and updated_at fields.
func (r *Repo) SetStatus(ctx context.Context, id string, status item.Status, updatedAt int64) error {
	key := itemKey(id)
	fields := map[string]string{
		"status":     string(status),
		"updated_at": strconv.FormatInt(updatedAt, 10),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset status %s: %w", key, err)
	}
	return nil
}

// SetCategory updates only the category and updated_at fields.
func (r *Repo) SetCategory(ctx context.Context, id, category string, updatedAt int64) error {
	key := itemKey(id)
	fields := map[string]string{
		"category":   category,
		"updated_at": strconv.FormatInt(updatedAt, 10),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset category %s: %w", key, err)
	}
	return nil
}

// IncrementViews bumps the item view counter and returns the new value.
func (r *Repo) IncrementViews(ctx context.Context, id string) (int64, error) {
	n, err := r.store.HIncrBy(ctx, itemKey(id), "views", 1)
	if err != nil {
		return 0, fmt.Errorf("hincrby views %s: %w", id, err)
	}
	return n, nil
}

// Liked reports whether the user has already liked the item.
func (r *Repo) Liked(ctx context.Context, itemID, userID string) (bool, error) {
	m, err := r.store.HGetAll(ctx, likesKey(itemID))
	if err != nil {
		return false, fmt.Errorf("hgetall %s: %w", likesKey(itemID), err)
	}
	_, ok := m[userID]
	return ok, nil
}

// Like records a user like and bumps the like counter. Returns the new count.
func (r *Repo) Like(ctx context.Context, itemID, userID string) (int64, error) {
	if err := r.store.HSet(ctx, likesKey(itemID), map[string]string{userID: "1"}); err != nil {
		return 0, fmt.Errorf("hset %s: %w", likesKey(itemID), err)
	}
	n, err := r.store.HIncrBy(ctx, itemKey(itemID), "likes", 1)
	if err != nil {
		return 0, fmt.Errorf("hincrby likes %s: %w", itemID, err)
	}
	return n, nil
}

// Unlike removes a user like and decrements the like counter, clamping at zero.
func (r *Repo) Unlike(ctx context.Context, itemID, userID string) (int64, error) {
	if err := r.store.HDel(ctx, likesKey(itemID), userID); err != nil {
		return 0, fmt.Errorf("hdel %s: %w", likesKey(itemID), err)
	}
	n, err := r.store.HIncrBy(ctx, itemKey(itemID), "likes", -1)
	if err != nil {
		return 0, fmt.Errorf("hincrby likes %s: %w", itemID, err)
	}
	if n < 0 {
		n = 0
		if err := r.store.HSet(ctx, itemKey(itemID), map[string]string{"likes": "0"}); err != nil {
			return 0, fmt.Errorf("clamp likes %s: %w", itemID, err)
		}
	}
	return n, nil
}

const itemKeyPrefix = domain.KeyPrefix + "item:"

func itemKey(id string) string {
	return itemKeyPrefix + id
}

// likesKey uses its own flat prefix so SCAN on item keys never matches it.
func likesKey(id string) string {
	return fmt.Sprintf("%sitem_likes:%s", domain.KeyPrefix, id)
}
