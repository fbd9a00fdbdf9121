package gateway

import (
	"context"
	"net/http"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

// FeedbackInput is the typed body for submitting a product review. Sentiment
// is intentionally absent: the backend's analytics pipeline assigns it.
type FeedbackInput struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// AllFeedback lists every review (admin view).
func (c *Client) AllFeedback(ctx context.Context) ([]domain.Feedback, error) {
	var feedback []domain.Feedback
	if err := c.do(ctx, "all_feedback", http.MethodGet, "/feedback/all", nil, nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// ProductFeedback lists reviews for one product.
func (c *Client) ProductFeedback(ctx context.Context, productID string) ([]domain.Feedback, error) {
	var feedback []domain.Feedback
	if err := c.do(ctx, "product_feedback", http.MethodGet, "/feedback/product/"+productID, nil, nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// SubmitFeedback validates the review locally, then posts it. Missing fields
// surface as *ValidationError before any network call is made.
func (c *Client) SubmitFeedback(ctx context.Context, in FeedbackInput) (*domain.Feedback, error) {
	var missing []string
	if in.ProductID == "" {
		missing = append(missing, "product_id")
	}
	if in.Rating == 0 {
		missing = append(missing, "rating")
	}
	if in.Comment == "" {
		missing = append(missing, "comment")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	var feedback domain.Feedback
	if err := c.do(ctx, "submit_feedback", http.MethodPost, "/feedback", nil, in, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}
