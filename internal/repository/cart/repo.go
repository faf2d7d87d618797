package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
)

// store is the consumer interface for carts (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	Persist(ctx context.Context, key string) error
}

// Repo implements the cart repository. Carts are hashes keyed by cart ID
// with one field per item; anonymous carts carry a TTL that every write
// refreshes, and promotion clears it.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a cart repository. ttl applies to every unpromoted cart.
func New(s store, ttl time.Duration) *Repo {
	return &Repo{store: s, ttl: ttl}
}

// SetLine upserts a single cart line and refreshes the cart TTL.
func (r *Repo) SetLine(ctx context.Context, cartID string, line domcart.Line) error {
	key := cartKey(cartID)

	field, value, err := lineToField(line)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, map[string]string{field: value}); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.Expire(ctx, key, r.ttl, false); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}
	return nil
}

// Lines returns all lines of a cart. A missing cart yields an empty slice:
// carts come into existence on first write.
func (r *Repo) Lines(ctx context.Context, cartID string) ([]domcart.Line, error) {
	key := cartKey(cartID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}

	lines := make([]domcart.Line, 0, len(m))
	for itemID, raw := range m {
		line, err := lineFromField(itemID, raw)
		if err != nil {
			return nil, fmt.Errorf("hydrate line %s/%s: %w", cartID, itemID, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// RemoveLine deletes one line from a cart.
func (r *Repo) RemoveLine(ctx context.Context, cartID, itemID string) error {
	key := cartKey(cartID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrCartNotFound
	}

	if err := r.store.HDel(ctx, key, itemID); err != nil {
		return fmt.Errorf("hdel %s: %w", key, err)
	}
	return nil
}

// Clear removes the whole cart.
func (r *Repo) Clear(ctx context.Context, cartID string) error {
	key := cartKey(cartID)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Promote makes a cart permanent by clearing its TTL.
func (r *Repo) Promote(ctx context.Context, cartID string) error {
	key := cartKey(cartID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrCartNotFound
	}

	if err := r.store.Persist(ctx, key); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func cartKey(cartID string) string {
	return fmt.Sprintf("%scart:%s", domain.KeyPrefix, cartID)
}
