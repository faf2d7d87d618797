package order

import (
	"fmt"
	"math"
	"time"
)

// TaxRate is the flat sales tax applied to the order subtotal.
const TaxRate = 0.065

// Line is one sold item inside an order.
type Line struct {
	ItemID    string
	Name      string
	UnitPrice float64
	Quantity  int
}

// Totals is the money breakdown of an order. Subtotal is the sum of line
// prices, taxes are rounded to cents, and the grand total is rounded once
// more after adding shipping.
type Totals struct {
	Subtotal float64
	Taxes    float64
	Shipping float64
	Total    float64
}

// Compute derives the order totals from its lines and a shipping fee.
func Compute(lines []Line, shipping float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	taxes := round2(subtotal * TaxRate)
	return Totals{
		Subtotal: subtotal,
		Taxes:    taxes,
		Shipping: shipping,
		Total:    round2(subtotal + taxes + shipping),
	}
}

// Customer identifies the buyer and the shipping destination of a sale.
// Email may be empty for guest checkout.
type Customer struct {
	Email           string
	Name            string
	ShippingAddress string
}

// Order is a completed sale (immutable value object).
type Order struct {
	id            string
	cartID        string
	customer      Customer
	lines         []Line
	totals        Totals
	paymentID     string
	paymentMethod string
	confirmation  string
	createdAt     int64
}

// New validates and creates an Order with computed totals.
func New(
	id, cartID string, customer Customer,
	lines []Line, shipping float64,
	paymentID, paymentMethod, confirmation string,
) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("order id is required")
	}
	if len(lines) == 0 {
		return Order{}, fmt.Errorf("order requires at least one line")
	}
	if shipping < 0 {
		return Order{}, fmt.Errorf("shipping fee must not be negative")
	}

	return Order{
		id:            id,
		cartID:        cartID,
		customer:      customer,
		lines:         cloneLines(lines),
		totals:        Compute(lines, shipping),
		paymentID:     paymentID,
		paymentMethod: paymentMethod,
		confirmation:  confirmation,
		createdAt:     time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates an Order without validation (storage hydration).
func Reconstruct(
	id, cartID string, customer Customer,
	lines []Line, totals Totals,
	paymentID, paymentMethod, confirmation string,
	createdAt int64,
) Order {
	return Order{
		id:            id,
		cartID:        cartID,
		customer:      customer,
		lines:         lines,
		totals:        totals,
		paymentID:     paymentID,
		paymentMethod: paymentMethod,
		confirmation:  confirmation,
		createdAt:     createdAt,
	}
}

// ID returns the order identifier.
func (o Order) ID() string { return o.id }

// CartID returns the cart this order was checked out from.
func (o Order) CartID() string { return o.cartID }

// Customer returns the buyer identity and shipping destination.
func (o Order) Customer() Customer { return o.customer }

// Lines returns the sold item lines.
func (o Order) Lines() []Line { return o.lines }

// Totals returns the money breakdown.
func (o Order) Totals() Totals { return o.totals }

// PaymentID returns the payment record identifier.
func (o Order) PaymentID() string { return o.paymentID }

// PaymentMethod returns the method reported by the payment processor.
func (o Order) PaymentMethod() string { return o.paymentMethod }

// Confirmation returns the processor confirmation number.
func (o Order) Confirmation() string { return o.confirmation }

// CreatedAt returns the order creation time, unix milliseconds.
func (o Order) CreatedAt() int64 { return o.createdAt }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func cloneLines(lines []Line) []Line {
	c := make([]Line, len(lines))
	copy(c, lines)
	return c
}
