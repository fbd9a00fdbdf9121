package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopstream/storefront-gateway/internal/analytics"
	"github.com/shopstream/storefront-gateway/internal/core/domain"
	"github.com/shopstream/storefront-gateway/internal/gateway"
	"github.com/shopstream/storefront-gateway/pkg/logger"
)

func init() {
	var category, search string

	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}

			products, err := e.client.Products(cmd.Context(), gateway.ProductFilter{
				Category: category,
				Search:   search,
			})
			if err != nil {
				return err
			}

			// Browse events are fire-and-forget; drained before exit.
			dispatcher := analytics.NewDispatcher(1, e.client, logger.Get())
			dispatcher.Start(cmd.Context())
			dispatcher.Enqueue(domain.Event{
				EventType: "product_list_view",
				SessionID: sessionID(e),
				Timestamp: time.Now().UTC(),
				Properties: map[string]any{
					"category": category,
					"search":   search,
				},
			})
			dispatcher.Stop()

			for _, p := range products {
				fmt.Printf("%-12s %-30s %8.2f  stock=%d\n", p.ID, p.Name, p.Price, p.StockQuantity)
			}
			return nil
		},
	}
	productsCmd.Flags().StringVar(&category, "category", "", "filter by category")
	productsCmd.Flags().StringVar(&search, "search", "", "search term")

	feedbackCmd := &cobra.Command{
		Use:   "feedback <product-id>",
		Short: "Show reviews for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			reviews, err := e.client.ProductFeedback(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, fb := range reviews {
				fmt.Printf("%d/5 [%s] %s\n", fb.Rating, fb.Sentiment, fb.Comment)
			}
			return nil
		},
	}

	rootCmd.AddCommand(productsCmd, feedbackCmd)
}

// sessionID keys analytics events to the signed-in user when present, or a
// fixed anonymous bucket otherwise.
func sessionID(e *env) string {
	if user := e.session.User(); user != nil {
		return user.ID
	}
	return "anonymous"
}
