package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// --- Empty inputs ---

func TestSearch_BlankQuery(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{availableItem(t, "sku-1", "Oak Chair", "", "")}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
	if catalog.calls != 0 {
		t.Error("catalog should not be read for a blank query")
	}
	if embed.calls != 0 {
		t.Error("embedder should not be called for a blank query")
	}
}

func TestSearch_EmptyCatalog(t *testing.T) {
	catalog := &mockCatalog{}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak chair", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
	if embed.calls != 0 {
		t.Error("embedder should not be called for an empty catalog")
	}
}

func TestSearch_OnlyUnavailableItems(t *testing.T) {
	sold := item.Reconstruct("sku-1", "Oak Chair", "", "", 100, 0, item.StatusSold, 0, 0, nil, 1, 1)
	catalog := &mockCatalog{items: []item.Item{sold}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak chair", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
	if embed.calls != 0 {
		t.Error("embedder should not be called when nothing is rankable")
	}
}

// --- Batch call shape ---

func TestSearch_SingleBatchCallInSnapshotOrder(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "sku-1", "Oak Chair", "Solid oak", "Seating"),
		availableItem(t, "sku-2", "Velvet Sofa", "Green velvet", "Living Room"),
	}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	if _, err := svc.Search(context.Background(), "oak chair", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if embed.calls != 1 {
		t.Fatalf("expected exactly one embedding call, got %d", embed.calls)
	}
	want := []string{
		"oak chair",
		"sku-1 Oak Chair Solid oak Seating",
		"sku-2 Velvet Sofa Green velvet Living Room",
	}
	if len(embed.lastTexts) != len(want) {
		t.Fatalf("expected %d texts, got %d", len(want), len(embed.lastTexts))
	}
	for i := range want {
		if embed.lastTexts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, embed.lastTexts[i], want[i])
		}
	}
}

func TestSearch_SkipsUnavailableItems(t *testing.T) {
	sold := item.Reconstruct("sku-2", "Oak Stool", "", "", 50, 0, item.StatusSold, 0, 0, nil, 1, 1)
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "sku-1", "Oak Chair", "", ""),
		sold,
	}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(embed.lastTexts) != 2 {
		t.Errorf("sold item should not be embedded: %v", embed.lastTexts)
	}
	for _, r := range results {
		if r.Item.ID() == "sku-2" {
			t.Error("sold item must not be ranked")
		}
	}
}

// --- Scoring scenarios ---

func TestSearch_OakChairEndToEnd(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "oak-1", "Oak Chair", "Solid oak dining chair", "Seating"),
		availableItem(t, "sofa-1", "Velvet Sofa", "Deep green velvet", "Living Room"),
	}}
	// Identical vectors: every semantic score is 1.0.
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak chair", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected the oak chair to be returned")
	}
	if results[0].Item.ID() != "oak-1" {
		t.Errorf("expected oak-1 first, got %s", results[0].Item.ID())
	}
	if results[0].CombinedScore < 0.7 {
		t.Errorf("expected combined >= 0.7 for a full keyword+semantic match, got %v", results[0].CombinedScore)
	}
	for i, r := range results {
		if r.CombinedScore <= 0.3 {
			t.Errorf("result %d leaked past the cutoff: %v", i, r.CombinedScore)
		}
		if r.CombinedScore > 1.0+1e-9 {
			t.Errorf("result %d combined score above 1.0: %v", i, r.CombinedScore)
		}
		if i > 0 && results[i].CombinedScore > results[i-1].CombinedScore {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestSearch_GibberishExcluded(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "oak-1", "Oak Chair", "Solid oak dining chair", "Seating"),
	}}
	// Orthogonal vectors: the query shares nothing with any item.
	embed := &mockEmbedder{vecFor: func(text string) []float32 {
		if text == "zzqqxx" {
			return []float32{1, 0, 0}
		}
		return []float32{0, 1, 0}
	}}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "zzqqxx", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for gibberish, got %d", len(results))
	}
}

func TestSearch_MalformedVectorZeroesOnlyThatItem(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "oak-1", "Oak Chair", "", ""),
		availableItem(t, "oak-2", "Oak Chair", "", ""),
	}}
	embed := &mockEmbedder{vecFor: func(text string) []float32 {
		if strings.HasPrefix(text, "oak-2") {
			return []float32{1, 0} // length mismatch against the query vector
		}
		return []float32{1, 0, 0}
	}}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak chair", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both items (keyword evidence alone clears the cutoff), got %d", len(results))
	}
	if results[0].Item.ID() != "oak-1" {
		t.Errorf("expected the well-formed item first, got %s", results[0].Item.ID())
	}
	if results[1].SemanticScore != 0 {
		t.Errorf("expected semantic 0.0 for the malformed vector, got %v", results[1].SemanticScore)
	}
	if results[0].SemanticScore == 0 {
		t.Error("well-formed item should keep its semantic score")
	}
}

func TestSearch_StableTieKeepsSnapshotOrder(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "sku-a", "Oak Table", "", ""),
		availableItem(t, "sku-b", "Oak Bench", "", ""),
	}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	// Single-token query hits both items identically; scores tie.
	results, err := svc.Search(context.Background(), "oak", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].CombinedScore != results[1].CombinedScore {
		t.Fatalf("fixture should tie: %v vs %v", results[0].CombinedScore, results[1].CombinedScore)
	}
	if results[0].Item.ID() != "sku-a" || results[1].Item.ID() != "sku-b" {
		t.Errorf("tie should keep snapshot order, got %s, %s",
			results[0].Item.ID(), results[1].Item.ID())
	}
}

// --- topK ---

func TestSearch_TopKCapsResults(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "sku-1", "Oak Chair", "", ""),
		availableItem(t, "sku-2", "Oak Table", "", ""),
		availableItem(t, "sku-3", "Oak Bench", "", ""),
	}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected topK=2 to cap results, got %d", len(results))
	}
}

func TestSearch_TopKZeroMeansUncapped(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "sku-1", "Oak Chair", "", ""),
		availableItem(t, "sku-2", "Oak Table", "", ""),
		availableItem(t, "sku-3", "Oak Bench", "", ""),
	}}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected all 3 results with topK=0, got %d", len(results))
	}
}

// --- Failures ---

func TestSearch_EmbedFailureFailsWholeSearch(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{availableItem(t, "sku-1", "Oak Chair", "", "")}}
	embed := &mockEmbedder{err: fmt.Errorf("status 500: %w", domain.ErrEmbeddingProviderError)}
	svc := New(catalog, embed)

	results, err := svc.Search(context.Background(), "oak chair", 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected ErrEmbeddingProviderError in the chain, got %v", err)
	}
	if results != nil {
		t.Errorf("expected no partial results, got %v", results)
	}
}

func TestSearch_CatalogError(t *testing.T) {
	catalog := &mockCatalog{err: errors.New("scan failed")}
	embed := &mockEmbedder{}
	svc := New(catalog, embed)

	_, err := svc.Search(context.Background(), "oak", 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if embed.calls != 0 {
		t.Error("embedder should not be called when the catalog read fails")
	}
}

// --- Usage + tuning ---

func TestSearch_RecordsTokenUsage(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{availableItem(t, "sku-1", "Oak Chair", "", "")}}
	embed := &mockEmbedder{} // 3 tokens per text, 2 texts
	svc := New(catalog, embed)

	ctx, usage := domain.NewContextWithUsage(context.Background())
	if _, err := svc.Search(ctx, "oak", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.TotalTokens != 6 {
		t.Errorf("expected 6 tokens recorded, got %d", usage.TotalTokens)
	}
	if !usage.Used {
		t.Error("expected usage marked as used")
	}
}

func TestWithTuning_PartialOverride(t *testing.T) {
	svc := New(&mockCatalog{}, &mockEmbedder{}).WithTuning(Tuning{MinScore: 0.6})

	if svc.tuning.MinScore != 0.6 {
		t.Errorf("expected MinScore override, got %v", svc.tuning.MinScore)
	}
	if svc.tuning.SemanticWeight != DefaultSemanticWeight {
		t.Errorf("unset fields should keep defaults, got %v", svc.tuning.SemanticWeight)
	}
}

func TestSearch_RaisedCutoffExcludesWeakMatches(t *testing.T) {
	catalog := &mockCatalog{items: []item.Item{
		availableItem(t, "sku-1", "Oak Chair", "", ""),
	}}
	// Orthogonal vectors leave only keyword evidence (0.4 combined).
	embed := &mockEmbedder{vecFor: func(text string) []float32 {
		if text == "oak chair" {
			return []float32{1, 0, 0}
		}
		return []float32{0, 1, 0}
	}}
	svc := New(catalog, embed).WithTuning(Tuning{MinScore: 0.5})

	results, err := svc.Search(context.Background(), "oak chair", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected raised cutoff to exclude the item, got %d results", len(results))
	}
}
