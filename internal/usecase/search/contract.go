package search

import (
	"context"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// Catalog reads the inventory snapshot the ranker scores against.
type Catalog interface {
	List(ctx context.Context) ([]item.Item, error)
}

// Embedder vectorizes the query and all item texts in one call.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
