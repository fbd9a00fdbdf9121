package domain

import "time"

// Feedback is a product review. The sentiment label is assigned by the
// backend's analytics pipeline after submission; the client renders whatever
// label the backend reports and never computes one.
type Feedback struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Sentiment string    `json:"sentiment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminStats is the backend-computed dashboard snapshot.
type AdminStats struct {
	TotalUsers    int     `json:"total_users"`
	TotalProducts int     `json:"total_products"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}
