package checkout

import (
	"context"

	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
)

// Carts reads and retires the cart being checked out.
type Carts interface {
	Lines(ctx context.Context, cartID string) ([]domcart.Line, error)
	Promote(ctx context.Context, cartID string) error
	Clear(ctx context.Context, cartID string) error
}

// Inventory resolves items and flips them to sold.
type Inventory interface {
	Get(ctx context.Context, id string) (item.Item, error)
	MarkSold(ctx context.Context, id string) error
}

// Orders persists completed sales and reads them back.
type Orders interface {
	Create(ctx context.Context, o domorder.Order) error
	Get(ctx context.Context, id string) (domorder.Order, error)
}
