package search

import (
	"context"
	"testing"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// --- Mocks ---

type mockCatalog struct {
	items []item.Item
	err   error
	calls int
}

func (m *mockCatalog) List(_ context.Context) ([]item.Item, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

// mockEmbedder returns one vector per input text. vecFor overrides the
// vector per text; the default is a shared unit vector, which makes
// every semantic score 1.0.
type mockEmbedder struct {
	vecFor    func(text string) []float32
	err       error
	calls     int
	lastTexts []string
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	m.lastTexts = texts
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	embeddings := make([][]float32, len(texts))
	for i, t := range texts {
		if m.vecFor != nil {
			embeddings[i] = m.vecFor(t)
		} else {
			embeddings[i] = []float32{1, 0, 0}
		}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings, TotalTokens: 3 * len(texts)}, nil
}

func availableItem(t *testing.T, id, name, description, category string) item.Item {
	t.Helper()
	return item.Reconstruct(
		id, name, description, category,
		100, 0, item.StatusAvailable, 0, 0, nil, 1, 1,
	)
}
