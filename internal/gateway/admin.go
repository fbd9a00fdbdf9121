package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

// AdminStats fetches the dashboard snapshot. Backend enforces the role; UI
// affordances should additionally gate on the session's resolved role.
func (c *Client) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if err := c.do(ctx, "admin_stats", http.MethodGet, "/admin/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentOrders lists the most recent orders for the admin view.
func (c *Client) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var orders []domain.Order
	if err := c.do(ctx, "recent_orders", http.MethodGet, "/admin/recent-orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Users lists registered accounts.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, "get_users", http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
