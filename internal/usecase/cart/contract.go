package cart

import (
	"context"

	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// Store is the persistence contract for cart lines.
type Store interface {
	SetLine(ctx context.Context, cartID string, line domcart.Line) error
	Lines(ctx context.Context, cartID string) ([]domcart.Line, error)
	RemoveLine(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
	Promote(ctx context.Context, cartID string) error
}

// Catalog resolves cart lines to their inventory items.
type Catalog interface {
	Get(ctx context.Context, id string) (item.Item, error)
}
