package domain

import "time"

// Event is a behavioural analytics event (page view, add-to-cart, search).
// Events are fire-and-forget: the backend's streaming pipeline consumes them
// asynchronously and nothing in the storefront depends on their outcome.
type Event struct {
	EventType  string         `json:"event_type"`
	CustomerID string         `json:"customer_id,omitempty"`
	ProductID  string         `json:"product_id,omitempty"`
	SessionID  string         `json:"session_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}
