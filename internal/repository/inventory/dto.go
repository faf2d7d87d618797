package inventory

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
)

// itemToHash converts a domain Item to a map for HSET.
func itemToHash(it item.Item) map[string]string {
	images, _ := json.Marshal(it.Images()) // []string never fails to marshal
	return map[string]string{
		"name":           it.Name(),
		"description":    it.Description(),
		"category":       it.Category(),
		"price":          strconv.FormatFloat(it.Price(), 'f', -1, 64),
		"original_price": strconv.FormatFloat(it.OriginalPrice(), 'f', -1, 64),
		"status":         string(it.Status()),
		"views":          strconv.Itoa(it.Views()),
		"likes":          strconv.Itoa(it.Likes()),
		"images_json":    string(images),
		"created_at":     strconv.FormatInt(it.CreatedAt(), 10),
		"updated_at":     strconv.FormatInt(it.UpdatedAt(), 10),
	}
}

// itemFromHash hydrates a domain Item from an HGETALL result map.
func itemFromHash(id string, m map[string]string) (item.Item, error) {
	price, err := strconv.ParseFloat(m["price"], 64)
	if err != nil {
		return item.Item{}, fmt.Errorf("invalid price for %s: %w", id, err)
	}

	originalPrice := 0.0
	if s := m["original_price"]; s != "" {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			originalPrice = parsed
		}
	}

	var images []string
	if s := m["images_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &images); err != nil {
			return item.Item{}, fmt.Errorf("invalid images for %s: %w", id, err)
		}
	}

	return item.Reconstruct(
		id,
		m["name"],
		m["description"],
		m["category"],
		price,
		originalPrice,
		item.Status(m["status"]),
		parseInt(m["views"]),
		parseInt(m["likes"]),
		images,
		parseInt64(m["created_at"]),
		parseInt64(m["updated_at"]),
	), nil
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
