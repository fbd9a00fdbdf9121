package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and modify the cart",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its backend-computed summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}

			cart, err := e.client.Cart(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := e.client.CartSummary(cmd.Context())
			if err != nil {
				return err
			}

			for _, item := range cart.Items {
				fmt.Printf("%-12s x%d\n", item.ProductID, item.Quantity)
			}
			fmt.Printf("%d item(s), total %.2f\n", summary.Quantity, summary.Total)
			return nil
		},
	}

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := e.client.AddToCart(cmd.Context(), args[0], quantity); err != nil {
				return err
			}
			fmt.Printf("Added %s x%d\n", args[0], quantity)
			return nil
		},
	}
	addCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			return e.client.RemoveCartItem(cmd.Context(), args[0])
		},
	}

	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Show order history",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			orders, err := e.client.Orders(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range orders {
				fmt.Printf("%-12s %-10s %8.2f  %s\n", o.ID, o.Status, o.TotalAmount, o.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	cartCmd.AddCommand(showCmd, addCmd, removeCmd)
	rootCmd.AddCommand(cartCmd, ordersCmd)
}
