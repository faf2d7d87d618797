package nomurahome

import (
	"context"
	"fmt"
	"time"
)

// SearchQuery is a fluent builder for hybrid search queries.
type SearchQuery struct {
	svc searchUseCase
	obs *observer

	query string
	topK  int
}

// TopK caps the number of results. Zero or negative means uncapped.
func (q *SearchQuery) TopK(n int) *SearchQuery {
	q.topK = n
	return q
}

// Do executes the search. Results come back sorted by combined score,
// all above the ranking cutoff; an empty query yields no results and no
// provider call.
func (q *SearchQuery) Do(ctx context.Context) (hits []SearchHit, err error) {
	start := time.Now()
	defer func() { q.obs.observe("search", start, err) }()

	results, err := q.svc.Search(ctx, q.query, q.topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromScoredResults(results), nil
}
