package order

import (
	"encoding/json"
	"fmt"

	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
)

// orderDoc is the JSON-serializable representation of an order.
type orderDoc struct {
	CartID          string    `json:"cart_id"`
	UserEmail       string    `json:"user_email,omitempty"`
	CustomerName    string    `json:"customer_name,omitempty"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	Lines           []lineDoc `json:"lines"`
	Subtotal        float64   `json:"subtotal"`
	Taxes           float64   `json:"taxes"`
	Shipping        float64   `json:"shipping"`
	Total           float64   `json:"total"`
	PaymentID       string    `json:"payment_id"`
	PaymentMethod   string    `json:"payment_method"`
	Confirmation    string    `json:"confirmation_number"`
	CreatedAt       int64     `json:"created_at"`
}

type lineDoc struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func orderToDoc(o domorder.Order) orderDoc {
	lines := make([]lineDoc, len(o.Lines()))
	for i, l := range o.Lines() {
		lines[i] = lineDoc{ItemID: l.ItemID, Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	t := o.Totals()
	c := o.Customer()
	return orderDoc{
		CartID:          o.CartID(),
		UserEmail:       c.Email,
		CustomerName:    c.Name,
		ShippingAddress: c.ShippingAddress,
		Lines:           lines,
		Subtotal:        t.Subtotal,
		Taxes:           t.Taxes,
		Shipping:        t.Shipping,
		Total:           t.Total,
		PaymentID:       o.PaymentID(),
		PaymentMethod:   o.PaymentMethod(),
		Confirmation:    o.Confirmation(),
		CreatedAt:       o.CreatedAt(),
	}
}

// orderFromJSON hydrates an order from a JSON.GET result. The result is a
// one-element array when fetched with the "$" path.
func orderFromJSON(id string, raw []byte) (domorder.Order, error) {
	var docs []orderDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Tolerate a bare object for results fetched without a path.
		var single orderDoc
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return domorder.Order{}, fmt.Errorf("unmarshal order %s: %w", id, err)
		}
		docs = []orderDoc{single}
	}
	if len(docs) == 0 {
		return domorder.Order{}, fmt.Errorf("empty order document %s", id)
	}

	d := docs[0]
	lines := make([]domorder.Line, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = domorder.Line{ItemID: l.ItemID, Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	totals := domorder.Totals{Subtotal: d.Subtotal, Taxes: d.Taxes, Shipping: d.Shipping, Total: d.Total}
	customer := domorder.Customer{Email: d.UserEmail, Name: d.CustomerName, ShippingAddress: d.ShippingAddress}

	return domorder.Reconstruct(
		id, d.CartID, customer, lines, totals,
		d.PaymentID, d.PaymentMethod, d.Confirmation, d.CreatedAt,
	), nil
}
