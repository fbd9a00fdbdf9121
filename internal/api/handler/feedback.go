package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstream/storefront-gateway/internal/metrics"
)

// FeedbackHandler proxies review reads and submissions to the backend.
type FeedbackHandler struct {
	proxy *Proxy
}

// NewFeedbackHandler creates a FeedbackHandler backed by the given proxy.
func NewFeedbackHandler(proxy *Proxy) *FeedbackHandler {
	return &FeedbackHandler{proxy: proxy}
}

// All handles GET /api/feedback/all — forwards the inbound Authorization
// header verbatim. The router guards this route with RequireAuthorization,
// so a request without credentials never reaches the upstream.
//
// @Summary      List all feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/feedback/all [get]
func (h *FeedbackHandler) All(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	return h.proxy.relay(c, "/api/feedback/all", http.MethodGet, "/feedback/all", auth, nil, "Failed to fetch feedback")
}

// ByProduct handles GET /api/feedback/product/:productId — transparent
// forward, no auth required.
//
// @Summary      List feedback for a product
// @Tags         feedback
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {array}   object
// @Failure      500        {object}  errorResponse
// @Router       /api/feedback/product/{productId} [get]
func (h *FeedbackHandler) ByProduct(c echo.Context) error {
	productID := c.Param("productId")
	return h.proxy.relay(c, "/api/feedback/product", http.MethodGet, "/feedback/product/"+productID, "", nil, "Failed to fetch product feedback")
}

// submitFeedbackRequest is the shape the storefront UI posts.
type submitFeedbackRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	Text      string `json:"text"       validate:"required"`
}

// backendFeedbackPayload is the shape the upstream expects. Sentiment is left
// unset: the backend's analytics pipeline assigns the real label after
// submission, and defaulting it here would present a fabricated value until
// that pipeline catches up.
type backendFeedbackPayload struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Sentiment string `json:"sentiment,omitempty"`
}

// Submit handles POST /api/feedback/product — validating forward. Required
// fields are checked locally and rejected with 400 before any upstream call;
// the validated payload is renamed into the upstream shape.
//
// @Summary      Submit product feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitFeedbackRequest  true  "Review"
// @Success      200   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/feedback/product [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("/api/feedback/product", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("/api/feedback/product", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	payload, err := json.Marshal(backendFeedbackPayload{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Text,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}

	auth := c.Request().Header.Get("Authorization")
	return h.proxy.relay(c, "/api/feedback/product", http.MethodPost, "/feedback", auth, payload, "Internal server error")
}
