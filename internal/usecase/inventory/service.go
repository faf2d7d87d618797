// Package inventory implements catalog management: the filtered listing,
// item CRUD, batch ingestion, view and like counters, and category curation.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	dombatch "github.com/shirwani/chloe-nomura-home/internal/domain/batch"
	"github.com/shirwani/chloe-nomura-home/internal/domain/category"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	"github.com/shirwani/chloe-nomura-home/internal/textmatch"
)

// MaxBatchSize is the maximum number of rows per batch upsert.
const MaxBatchSize = 100

// Filter narrows the catalog listing. Zero-value fields are skipped:
// an empty Query disables text matching, an empty Category and Status
// match everything, and a Limit of zero returns the full listing.
type Filter struct {
	Query    string
	Category string
	Status   item.Status
	Limit    int
}

// Draft is one unvalidated batch ingestion row. BatchUpsert runs each
// row through item construction and reports per-row outcomes, so a bad
// row never sinks the rest of the file.
type Draft struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Price         float64
	OriginalPrice float64
	Status        item.Status
	Images        []string
}

// Service manages the inventory catalog.
type Service struct {
	repo           Repository
	fuzzyThreshold float64
	maxBatchSize   int
}

// New creates an inventory service with default matching and batch limits.
func New(repo Repository) *Service {
	return &Service{
		repo:           repo,
		fuzzyThreshold: textmatch.DefaultMatchThreshold,
		maxBatchSize:   MaxBatchSize,
	}
}

// WithFuzzyThreshold configures the listing filter's fuzzy match ratio (0-100).
func (s *Service) WithFuzzyThreshold(threshold float64) *Service {
	if threshold > 0 && threshold <= 100 {
		s.fuzzyThreshold = threshold
	}
	return s
}

// WithMaxBatchSize configures the maximum batch upsert size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// List returns catalog items matching the filter, newest first. The text
// filter is deliberately forgiving: it tokenizes the query and the item's
// name, description and category with plural stripping, and keeps an item
// on any exact stem overlap or any fuzzy token pair at or above the
// configured threshold.
func (s *Service) List(ctx context.Context, f Filter) ([]item.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	queryTokens := textmatch.TokenizeStemmed(f.Query)

	matched := make([]item.Item, 0, len(items))
	for _, it := range items {
		if f.Status != "" && it.Status() != f.Status {
			continue
		}
		if f.Category != "" && !strings.EqualFold(it.Category(), f.Category) {
			continue
		}
		if len(queryTokens) > 0 && !s.matchesQuery(it, queryTokens) {
			continue
		}
		matched = append(matched, it)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt() != matched[j].CreatedAt() {
			return matched[i].CreatedAt() > matched[j].CreatedAt()
		}
		return matched[i].ID() < matched[j].ID()
	})

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (s *Service) matchesQuery(it item.Item, queryTokens map[string]struct{}) bool {
	text := it.Name() + " " + it.Description() + " " + it.Category()
	itemTokens := textmatch.TokenizeStemmed(text)

	// Exact stem overlap short-circuits the quadratic fuzzy pass.
	for q := range queryTokens {
		if _, ok := itemTokens[q]; ok {
			return true
		}
	}
	return textmatch.AnyMatch(queryTokens, itemTokens, s.fuzzyThreshold)
}

// Get returns a single item by ID without touching its view counter.
func (s *Service) Get(ctx context.Context, id string) (item.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return item.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}

// RecordView increments an item's view counter and returns the new count.
// Product page loads call this alongside Get.
func (s *Service) RecordView(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record view %s: %w", id, err)
	}
	return n, nil
}

// Create adds a new catalog item. Items with a blank category get one
// inferred from their name and description. An existing ID is rejected
// with ErrItemExists rather than silently overwritten.
func (s *Service) Create(ctx context.Context, it item.Item) (item.Item, error) {
	if _, err := s.repo.Get(ctx, it.ID()); err == nil {
		return item.Item{}, fmt.Errorf("create item %s: %w", it.ID(), domain.ErrItemExists)
	} else if !errors.Is(err, domain.ErrItemNotFound) {
		return item.Item{}, fmt.Errorf("check item %s: %w", it.ID(), err)
	}

	it = inferCategory(it)
	if _, err := s.repo.Upsert(ctx, it); err != nil {
		return item.Item{}, fmt.Errorf("create item %s: %w", it.ID(), err)
	}
	return it, nil
}

// Update replaces an existing item's listing fields while preserving its
// view and like counters and creation time. A blank category is
// re-inferred from the new name and description.
func (s *Service) Update(ctx context.Context, it item.Item) (item.Item, error) {
	existing, err := s.repo.Get(ctx, it.ID())
	if err != nil {
		return item.Item{}, fmt.Errorf("get item %s: %w", it.ID(), err)
	}

	it = inferCategory(it)
	merged := item.Reconstruct(
		it.ID(), it.Name(), it.Description(), it.Category(),
		it.Price(), it.OriginalPrice(),
		it.Status(), existing.Views(), existing.Likes(), it.Images(),
		existing.CreatedAt(), time.Now().UnixMilli(),
	)
	if _, err := s.repo.Upsert(ctx, merged); err != nil {
		return item.Item{}, fmt.Errorf("update item %s: %w", it.ID(), err)
	}
	return merged, nil
}

// Delete removes an item and its like ledger.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// BatchUpsert validates each draft row, infers missing categories, and
// writes all valid rows in one pipelined upsert. The returned slice has
// one result per input row in input order.
func (s *Service) BatchUpsert(ctx context.Context, drafts []Draft) []dombatch.Result {
	results := make([]dombatch.Result, len(drafts))

	if len(drafts) > s.maxBatchSize {
		for i, d := range drafts {
			results[i] = dombatch.NewError(
				d.ID,
				fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidItem),
			)
		}
		return results
	}

	// Validate all rows; collect valid ones for a single pipelined write.
	valid := make([]item.Item, 0, len(drafts))
	validIdx := make([]int, 0, len(drafts))

	for i, d := range drafts {
		it, err := item.New(
			d.ID, d.Name, d.Description, d.Category,
			d.Price, d.OriginalPrice, d.Status, d.Images,
		)
		if err != nil {
			results[i] = dombatch.NewError(d.ID, fmt.Errorf("%v: %w", err, domain.ErrInvalidItem))
			continue
		}
		valid = append(valid, inferCategory(it))
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	if err := s.repo.UpsertMulti(ctx, valid); err != nil {
		for _, i := range validIdx {
			results[i] = dombatch.NewError(drafts[i].ID, fmt.Errorf("batch upsert: %w", err))
		}
		return results
	}

	for _, i := range validIdx {
		results[i] = dombatch.NewOK(drafts[i].ID)
	}
	return results
}

// ToggleLike flips a user's like on an item and returns the new state
// and total. Liking twice is a no-op on the count; the second call
// unlikes instead.
func (s *Service) ToggleLike(ctx context.Context, itemID, userID string) (bool, int64, error) {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return false, 0, fmt.Errorf("get item %s: %w", itemID, err)
	}

	liked, err := s.repo.Liked(ctx, itemID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("check like %s: %w", itemID, err)
	}

	if liked {
		n, err := s.repo.Unlike(ctx, itemID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("unlike %s: %w", itemID, err)
		}
		return false, n, nil
	}

	n, err := s.repo.Like(ctx, itemID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("like %s: %w", itemID, err)
	}
	return true, n, nil
}

// MarkSold marks an item sold. Checkout calls this for every purchased line.
func (s *Service) MarkSold(ctx context.Context, id string) error {
	if err := s.repo.SetStatus(ctx, id, item.StatusSold, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("mark sold %s: %w", id, err)
	}
	return nil
}

// MarkPending marks an item pending, holding it out of search and checkout.
func (s *Service) MarkPending(ctx context.Context, id string) error {
	if err := s.repo.SetStatus(ctx, id, item.StatusPending, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("mark pending %s: %w", id, err)
	}
	return nil
}

// MarkAvailable returns an item to the sellable pool.
func (s *Service) MarkAvailable(ctx context.Context, id string) error {
	if err := s.repo.SetStatus(ctx, id, item.StatusAvailable, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("mark available %s: %w", id, err)
	}
	return nil
}

// Categories returns item counts per category across the whole catalog.
// Uncategorized items are counted under the fallback bucket.
func (s *Service) Categories(ctx context.Context) (map[string]int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	counts := make(map[string]int)
	for _, it := range items {
		name := it.Category()
		if name == "" {
			name = category.Other
		}
		counts[name]++
	}
	return counts, nil
}

// BackfillCategories infers and persists a category for every item that
// has none, returning how many items were updated.
func (s *Service) BackfillCategories(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	updated := 0
	for _, it := range items {
		if it.Category() != "" {
			continue
		}
		inferred := category.Infer(it.Name(), it.Description())
		if err := s.repo.SetCategory(ctx, it.ID(), inferred, time.Now().UnixMilli()); err != nil {
			return updated, fmt.Errorf("set category %s: %w", it.ID(), err)
		}
		updated++
	}
	return updated, nil
}

// RenameCategory moves every item in one category to another name and
// returns how many items moved. Renaming to a blank name is rejected.
func (s *Service) RenameCategory(ctx context.Context, from, to string) (int, error) {
	if strings.TrimSpace(to) == "" {
		return 0, fmt.Errorf("rename category: empty target: %w", domain.ErrCategoryNotFound)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	moved := 0
	for _, it := range items {
		if !strings.EqualFold(it.Category(), from) {
			continue
		}
		if err := s.repo.SetCategory(ctx, it.ID(), to, time.Now().UnixMilli()); err != nil {
			return moved, fmt.Errorf("set category %s: %w", it.ID(), err)
		}
		moved++
	}
	if moved == 0 {
		return 0, fmt.Errorf("rename category %q: %w", from, domain.ErrCategoryNotFound)
	}
	return moved, nil
}

// DeleteCategory dissolves a category: every item in it is re-inferred
// from its own text, and items that would land back in the deleted name
// fall through to the fallback bucket. Returns how many items moved.
func (s *Service) DeleteCategory(ctx context.Context, name string) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	moved := 0
	for _, it := range items {
		if !strings.EqualFold(it.Category(), name) {
			continue
		}
		next := category.Infer(it.Name(), it.Description())
		if strings.EqualFold(next, name) {
			next = category.Other
		}
		if err := s.repo.SetCategory(ctx, it.ID(), next, time.Now().UnixMilli()); err != nil {
			return moved, fmt.Errorf("set category %s: %w", it.ID(), err)
		}
		moved++
	}
	if moved == 0 {
		return 0, fmt.Errorf("delete category %q: %w", name, domain.ErrCategoryNotFound)
	}
	return moved, nil
}

func inferCategory(it item.Item) item.Item {
	if it.Category() != "" {
		return it
	}
	return it.WithCategory(category.Infer(it.Name(), it.Description()))
}
