package gateway

import (
	"context"
	"net/http"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

// TrackEvent sends one behavioural event to the backend pipeline. Callers
// that must not block the shopper path should go through the analytics
// dispatcher instead of calling this inline.
func (c *Client) TrackEvent(ctx context.Context, event domain.Event) error {
	return c.do(ctx, "track_event", http.MethodPost, "/events", nil, event, nil)
}

// Health checks the backend's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/health", nil, nil, nil)
}
