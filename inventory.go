package nomurahome

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
)

// InventoryService manages the furniture catalog.
type InventoryService struct {
	svc inventoryUseCase
	obs *observer
}

// List returns catalog items newest first, narrowed by the filter.
func (s *InventoryService) List(ctx context.Context, f ListFilter) (items []Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.list", start, err) }()

	found, err := s.svc.List(ctx, inventoryuc.Filter{
		Query:    f.Query,
		Category: f.Category,
		Status:   item.Status(f.Status),
		Limit:    f.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return fromItems(found), nil
}

// Get returns a single item by id.
func (s *InventoryService) Get(ctx context.Context, id string) (it Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.get", start, err) }()

	found, err := s.svc.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return fromItem(found), nil
}

// RecordView bumps and returns an item's view counter.
func (s *InventoryService) RecordView(ctx context.Context, id string) (views int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.record_view", start, err) }()

	views, err = s.svc.RecordView(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record view %s: %w", id, err)
	}
	return views, nil
}

// Create adds a new listing. A blank draft ID gets a minted UUID.
func (s *InventoryService) Create(ctx context.Context, d ItemDraft) (it Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.create", start, err) }()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	domIt, err := toDomainItem(d)
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	created, err := s.svc.Create(ctx, domIt)
	if err != nil {
		return Item{}, fmt.Errorf("create item %s: %w", d.ID, err)
	}
	return fromItem(created), nil
}

// Update replaces a listing's editable fields, keeping its counters.
func (s *InventoryService) Update(ctx context.Context, d ItemDraft) (it Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.update", start, err) }()

	domIt, err := toDomainItem(d)
	if err != nil {
		return Item{}, fmt.Errorf("update item: %w", err)
	}
	updated, err := s.svc.Update(ctx, domIt)
	if err != nil {
		return Item{}, fmt.Errorf("update item %s: %w", d.ID, err)
	}
	return fromItem(updated), nil
}

// Delete removes a listing and its like records.
func (s *InventoryService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// BatchUpsert writes drafts in bulk. Rows fail independently; the
// result slice is positional with the input.
func (s *InventoryService) BatchUpsert(ctx context.Context, drafts []ItemDraft) []BatchResult {
	start := time.Now()
	defer func() { s.obs.observe("inventory.batch_upsert", start, nil) }()

	internal := make([]inventoryuc.Draft, len(drafts))
	for i, d := range drafts {
		internal[i] = toDraft(d)
	}
	return fromBatchResults(s.svc.BatchUpsert(ctx, internal))
}

// ToggleLike flips userID's like on an item. Returns the resulting
// state and the item's like count.
func (s *InventoryService) ToggleLike(ctx context.Context, itemID, userID string) (liked bool, likes int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.toggle_like", start, err) }()

	liked, likes, err = s.svc.ToggleLike(ctx, itemID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("toggle like %s: %w", itemID, err)
	}
	return liked, likes, nil
}

// MarkSold transitions an item to sold.
func (s *InventoryService) MarkSold(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.mark_sold", start, err) }()

	if err = s.svc.MarkSold(ctx, id); err != nil {
		return fmt.Errorf("mark sold %s: %w", id, err)
	}
	return nil
}

// MarkPending transitions an item to pending.
func (s *InventoryService) MarkPending(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.mark_pending", start, err) }()

	if err = s.svc.MarkPending(ctx, id); err != nil {
		return fmt.Errorf("mark pending %s: %w", id, err)
	}
	return nil
}

// MarkAvailable transitions an item back to available.
func (s *InventoryService) MarkAvailable(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.mark_available", start, err) }()

	if err = s.svc.MarkAvailable(ctx, id); err != nil {
		return fmt.Errorf("mark available %s: %w", id, err)
	}
	return nil
}

// Categories returns item counts per category. Blank categories count
// under "Other".
func (s *InventoryService) Categories(ctx context.Context) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.categories", start, err) }()

	counts, err = s.svc.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return counts, nil
}

// BackfillCategories infers and stores a category for every item that
// has none. Returns the number of items updated.
func (s *InventoryService) BackfillCategories(ctx context.Context) (updated int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.backfill_categories", start, err) }()

	updated, err = s.svc.BackfillCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("backfill categories: %w", err)
	}
	return updated, nil
}

// RenameCategory moves every item in category from to category to.
// Returns the number of items moved.
func (s *InventoryService) RenameCategory(ctx context.Context, from, to string) (moved int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.rename_category", start, err) }()

	moved, err = s.svc.RenameCategory(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("rename category %s: %w", from, err)
	}
	return moved, nil
}

// DeleteCategory dissolves a category, re-inferring each member item's
// category from its text. Returns the number of items touched.
func (s *InventoryService) DeleteCategory(ctx context.Context, name string) (moved int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("inventory.delete_category", start, err) }()

	moved, err = s.svc.DeleteCategory(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("delete category %s: %w", name, err)
	}
	return moved, nil
}
