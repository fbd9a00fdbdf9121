package gateway

import (
	"context"
	"net/http"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

// OrderInput is the typed body for creating an order directly (admin and
// channel integrations; shoppers normally go through Checkout).
type OrderInput struct {
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress map[string]string  `json:"shipping_address"`
	BillingAddress  map[string]string  `json:"billing_address,omitempty"`
	Channel         string             `json:"channel,omitempty"`
}

// OrderUpdate carries the mutable order fields. Nil fields are left as-is.
type OrderUpdate struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

// Orders lists the caller's order history (all orders for admins).
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, "get_orders", http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches a single order.
func (c *Client) Order(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "get_order", http.MethodGet, "/orders/"+id, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places an order without going through the cart.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "create_order", http.MethodPost, "/orders", nil, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies status changes to an order.
func (c *Client) UpdateOrder(ctx context.Context, id string, in OrderUpdate) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "update_order", http.MethodPut, "/orders/"+id, nil, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder deletes an order.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, "cancel_order", http.MethodDelete, "/orders/"+id, nil, nil, nil)
}
