package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutInput collects what the shopper enters at checkout. Totals are
// computed by the backend from the server-side cart, never from here.
type CheckoutInput struct {
	ShippingAddress map[string]string `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method"`
	Notes           string            `json:"notes,omitempty"`
}

// CheckoutResult is the backend's confirmation of a placed order.
type CheckoutResult struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// Cart fetches the current shopper's open cart.
func (c *Client) Cart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, "get_cart", http.MethodGet, "/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart puts quantity units of a product into the cart.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	body := addToCartRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "add_to_cart", http.MethodPost, "/cart/items", nil, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets the quantity of a line already in the cart.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	query := url.Values{"quantity": []string{strconv.Itoa(quantity)}}
	var cart domain.Cart
	if err := c.do(ctx, "update_cart_item", http.MethodPut, "/cart/items/"+productID, query, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem drops a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, "remove_cart_item", http.MethodDelete, "/cart/items/"+productID, nil, nil, nil)
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "clear_cart", http.MethodDelete, "/cart", nil, nil, nil)
}

// CartSummary fetches the backend-computed item count and total. Callers may
// fetch this concurrently with Cart; completions interleave arbitrarily.
func (c *Client) CartSummary(ctx context.Context) (*domain.CartSummary, error) {
	var summary domain.CartSummary
	if err := c.do(ctx, "get_cart_summary", http.MethodGet, "/cart/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Checkout converts the cart into an order.
func (c *Client) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	var result CheckoutResult
	if err := c.do(ctx, "checkout", http.MethodPost, "/cart/checkout", nil, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
