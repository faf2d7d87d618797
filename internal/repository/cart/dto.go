package cart

import (
	"encoding/json"
	"fmt"

	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
)

// lineRow is the JSON-serializable representation of a cart line stored as
// a hash field value.
type lineRow struct {
	Quantity int   `json:"quantity"`
	AddedAt  int64 `json:"added_at"`
}

// lineToField converts a domain line to a hash field/value pair.
func lineToField(line domcart.Line) (string, string, error) {
	data, err := json.Marshal(lineRow{Quantity: line.Quantity(), AddedAt: line.AddedAt()})
	if err != nil {
		return "", "", fmt.Errorf("marshal line: %w", err)
	}
	return line.ItemID(), string(data), nil
}

// lineFromField hydrates a domain line from a hash field/value pair.
func lineFromField(itemID, raw string) (domcart.Line, error) {
	var row lineRow
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		return domcart.Line{}, fmt.Errorf("unmarshal line: %w", err)
	}
	return domcart.Reconstruct(itemID, row.Quantity, row.AddedAt), nil
}
