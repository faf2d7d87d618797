package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shirwani/chloe-nomura-home/internal/db"
	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
)

// store is the consumer interface for orders (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements the order repository. Orders are JSON documents; each
// sold item additionally gets a flat ledger row for provenance lookups.
type Repo struct {
	store store
}

// New creates an order repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a completed order and its sold-item ledger rows.
func (r *Repo) Create(ctx context.Context, o domorder.Order) error {
	key := orderKey(o.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return fmt.Errorf("order %s already recorded: %w", o.ID(), db.ErrKeyExists)
	}

	data, err := json.Marshal(orderToDoc(o))
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}

	rows := make([]db.HashSetItem, len(o.Lines()))
	for i, l := range o.Lines() {
		rows[i] = db.HashSetItem{
			Key: soldKey(l.ItemID),
			Fields: map[string]string{
				"order_id":   o.ID(),
				"unit_price": strconv.FormatFloat(l.UnitPrice, 'f', -1, 64),
				"quantity":   strconv.Itoa(l.Quantity),
				"sold_at":    strconv.FormatInt(o.CreatedAt(), 10),
			},
		}
	}
	if err := r.store.HSetMulti(ctx, rows); err != nil {
		return fmt.Errorf("record sold ledger for %s: %w", o.ID(), err)
	}

	return nil
}

// Get returns an order by ID.
func (r *Repo) Get(ctx context.Context, id string) (domorder.Order, error) {
	key := orderKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domorder.Order{}, domain.ErrOrderNotFound
		}
		return domorder.Order{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return orderFromJSON(id, raw)
}

// SoldRecord returns the sold ledger for an item, or nil when it was never
// sold.
func (r *Repo) SoldRecord(ctx context.Context, itemID string) (map[string]string, error) {
	m, err := r.store.HGetAll(ctx, soldKey(itemID))
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", soldKey(itemID), err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

func orderKey(id string) string {
	return fmt.Sprintf("%sorder:%s", domain.KeyPrefix, id)
}

func soldKey(itemID string) string {
	return fmt.Sprintf("%ssold:%s", domain.KeyPrefix, itemID)
}
