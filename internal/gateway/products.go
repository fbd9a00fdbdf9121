package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

// ProductFilter narrows a catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Search   string
}

// ProductInput is the typed body for product creation and update. Admin-only
// on the backend side; the gateway just carries the credential.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	StockQuantity int      `json:"stock_quantity"`
	ImageURL      string   `json:"image_url,omitempty"`
	SKU           string   `json:"sku,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Products lists the catalogue, optionally filtered by category or search term.
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var products []domain.Product
	if err := c.do(ctx, "get_products", http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalogue entry.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, "get_product", http.MethodGet, "/products/"+id, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalogue entry.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, "create_product", http.MethodPost, "/products", nil, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a catalogue entry.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, "update_product", http.MethodPut, "/products/"+id, nil, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalogue entry.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, "delete_product", http.MethodDelete, "/products/"+id, nil, nil, nil)
}
