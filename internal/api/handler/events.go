package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstream/storefront-gateway/internal/metrics"
)

// EventHandler proxies behavioural analytics events to the backend pipeline.
type EventHandler struct {
	proxy *Proxy
}

// NewEventHandler creates an EventHandler backed by the given proxy.
func NewEventHandler(proxy *Proxy) *EventHandler {
	return &EventHandler{proxy: proxy}
}

// Track handles POST /api/events — transparent forward to the backend's
// /events/ endpoint. No auth required: anonymous shoppers emit events too.
//
// @Summary      Forward a behavioural event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Event payload"
// @Success      200   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/events [post]
func (h *EventHandler) Track(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(body) {
		metrics.ProxyRequestsTotal.WithLabelValues("/api/events", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	return h.proxy.relay(c, "/api/events", http.MethodPost, "/events/", "", body, "Failed to track event")
}
