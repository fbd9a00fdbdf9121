package domain

import "time"

// CartItem is a single line in a shopper's cart.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the current shopper's open cart.
type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartSummary carries the backend-computed item count and total. The client
// never recomputes these.
type CartSummary struct {
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}
