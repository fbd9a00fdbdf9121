package domain

import "time"

// Product is a catalogue entry as returned by the backend. Prices, ratings
// and stock levels are backend-authoritative; the client only renders them.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	ImageURL      string    `json:"image_url,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Tags          []string  `json:"tags"`
	Rating        *float64  `json:"rating,omitempty"`
	ReviewCount   *int      `json:"review_count,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
