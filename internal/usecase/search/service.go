// Package search ranks the inventory catalog against free-text queries
// by blending semantic similarity, keyword overlap, and category
// affinity into one combined score.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	"github.com/shirwani/chloe-nomura-home/internal/metrics"
	"github.com/shirwani/chloe-nomura-home/internal/textmatch"
)

// ScoredResult is one ranked catalog item with its score breakdown.
// Constructed per call, never persisted.
type ScoredResult struct {
	Item          item.Item
	SemanticScore float64
	KeywordScore  float64
	CombinedScore float64
}

// Service ranks available catalog items against a query. It is
// stateless; concurrent calls share only the catalog and the embedder.
type Service struct {
	catalog Catalog
	embed   Embedder
	tuning  Tuning
}

// New creates a search service with default tuning.
func New(catalog Catalog, embed Embedder) *Service {
	return &Service{catalog: catalog, embed: embed, tuning: DefaultTuning()}
}

// WithTuning overrides the ranking weights. Zero fields keep their
// defaults so partial config overrides compose.
func (s *Service) WithTuning(t Tuning) *Service {
	if t.SemanticWeight > 0 {
		s.tuning.SemanticWeight = t.SemanticWeight
	}
	if t.KeywordWeight > 0 {
		s.tuning.KeywordWeight = t.KeywordWeight
	}
	if t.CategoryWeight > 0 {
		s.tuning.CategoryWeight = t.CategoryWeight
	}
	if t.MinScore > 0 {
		s.tuning.MinScore = t.MinScore
	}
	return s
}

// Search scores every available catalog item against the query and
// returns the ones whose combined score clears the cutoff, best first.
// topK > 0 caps the result count; zero or negative means uncapped.
// A blank query or an empty catalog yields (nil, nil) without touching
// the embedding provider.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]ScoredResult, error) {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return nil, nil
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	catalog := make([]item.Item, 0, len(items))
	for _, it := range items {
		if it.Status() == item.StatusAvailable {
			catalog = append(catalog, it)
		}
	}
	if len(catalog) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return nil, nil
	}

	// One provider round-trip: index 0 is the query, 1..n follow the
	// catalog snapshot order.
	texts := make([]string, 0, len(catalog)+1)
	texts = append(texts, query)
	for _, it := range catalog {
		texts = append(texts, compositeText(it))
	}

	embRes, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("embed query and catalog: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(embRes.TotalTokens)

	queryVec := embRes.Embeddings[0]
	queryTokens := textmatch.Tokenize(query)

	results := make([]ScoredResult, 0, len(catalog))
	for i, it := range catalog {
		semantic := CosineSimilarity(queryVec, embRes.Embeddings[i+1])
		keyword := keywordScore(queryTokens, textmatch.Tokenize(compositeText(it)))
		category := keywordScore(queryTokens, textmatch.Tokenize(it.Category()))

		combined := s.tuning.SemanticWeight*semantic +
			s.tuning.KeywordWeight*keyword +
			s.tuning.CategoryWeight*category

		if combined > s.tuning.MinScore {
			results = append(results, ScoredResult{
				Item:          it,
				SemanticScore: semantic,
				KeywordScore:  keyword,
				CombinedScore: combined,
			})
		}
	}

	// Stable: equal scores keep snapshot order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResultsReturned.Observe(float64(len(results)))

	return results, nil
}
