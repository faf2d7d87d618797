package nomurahome

import (
	"context"
	"fmt"
	"time"

	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
)

// CheckoutService turns carts into orders.
type CheckoutService struct {
	svc checkoutUseCase
	obs *observer
}

// CreateSale checks out a cart: every line is re-priced and
// re-validated against the catalog, totals are computed with tax and
// shipping, the items are marked sold, and the cart is emptied.
func (s *CheckoutService) CreateSale(
	ctx context.Context,
	cartID string, customer Customer,
	shipping float64, paymentMethod, confirmation string,
) (order Order, err error) {
	start := time.Now()
	defer func() { s.obs.observe("checkout.create", start, err) }()

	created, err := s.svc.CreateSale(ctx, cartID, domorder.Customer{
		Email:           customer.Email,
		Name:            customer.Name,
		ShippingAddress: customer.ShippingAddress,
	}, shipping, paymentMethod, confirmation)
	if err != nil {
		return Order{}, fmt.Errorf("checkout cart %s: %w", cartID, err)
	}
	return fromOrder(created), nil
}

// Order returns a completed sale by id.
func (s *CheckoutService) Order(ctx context.Context, id string) (order Order, err error) {
	start := time.Now()
	defer func() { s.obs.observe("checkout.order", start, err) }()

	found, err := s.svc.Order(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return fromOrder(found), nil
}
