package domain

import "time"

// Order statuses as reported by the backend.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderItem is a purchased line with the price captured at checkout time.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name,omitempty"`
}

// Order is a placed order. Status, payment state and totals are
// backend-authoritative.
type Order struct {
	ID              string            `json:"id"`
	CustomerID      string            `json:"customer_id"`
	Items           []OrderItem       `json:"items"`
	TotalAmount     float64           `json:"total_amount"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	ShippingAddress map[string]string `json:"shipping_address"`
	BillingAddress  map[string]string `json:"billing_address"`
	Channel         string            `json:"channel,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
