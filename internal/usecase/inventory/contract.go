package inventory

import (
	"context"

	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// Repository is the persistence contract for inventory items.
type Repository interface {
	Upsert(ctx context.Context, it item.Item) (bool, error)
	UpsertMulti(ctx context.Context, items []item.Item) error
	Get(ctx context.Context, id string) (item.Item, error)
	List(ctx context.Context) ([]item.Item, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status item.Status, updatedAt int64) error
	SetCategory(ctx context.Context, id, category string, updatedAt int64) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	Liked(ctx context.Context, itemID, userID string) (bool, error)
	Like(ctx context.Context, itemID, userID string) (int64, error)
	Unlike(ctx context.Context, itemID, userID string) (int64, error)
}
