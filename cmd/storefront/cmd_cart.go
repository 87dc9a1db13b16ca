package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/cart"
	"github.com/marketfoods/storefront/pkg/localstore"
	"github.com/marketfoods/storefront/pkg/money"
)

var cartAddQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the locally persisted shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cart contents and the estimated total",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := app.carts.Load(cmd.Context())
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		printCart(items)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("product id must be a number: %q", args[0])
		}
		product, err := findProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := app.catalog.AddToCart(cmd.Context(), product, cartAddQuantity); err != nil {
			return err
		}
		fmt.Printf("Added %s to cart.\n", product.Name)
		return nil
	},
}

var cartAdjustCmd = &cobra.Command{
	Use:   "adjust <product-id> <delta>",
	Short: "Change a line's quantity by a delta, clamped to 1..stock",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("product id must be a number: %q", args[0])
		}
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("delta must be a number: %q", args[1])
		}
		items, err := app.carts.Adjust(cmd.Context(), id, delta)
		if err != nil {
			return err
		}
		printCart(items)
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set a line's quantity directly, clamped to 1..stock",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("product id must be a number: %q", args[0])
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %q", args[1])
		}
		items, err := app.carts.Reconcile(cmd.Context(), id, quantity)
		if err != nil {
			return err
		}
		printCart(items)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("product id must be a number: %q", args[0])
		}
		items, err := app.carts.Remove(cmd.Context(), id)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		printCart(items)
		return nil
	},
}

var cartWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the cart and reprint it when another process changes it",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifier, ok := app.state.(localstore.Notifier)
		if !ok {
			return fmt.Errorf("state driver %q does not support change notifications", app.cfg.State.Driver)
		}
		changed := make(chan struct{}, 1)
		cancel, err := notifier.Subscribe(func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return err
		}
		defer cancel()

		printCart(app.carts.Load(cmd.Context()))
		fmt.Println("Watching for changes, press Ctrl-C to stop.")
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-changed:
				fmt.Println()
				printCart(app.carts.Load(cmd.Context()))
			}
		}
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove everything from the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.carts.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Cart cleared.")
		return nil
	},
}

func printCart(items []cart.LineItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tLINE TOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%d %s\t%s\t%s\n",
			item.ID, item.Name, item.Quantity, item.Unit,
			money.FormatPerUnit(item.Price, item.Unit),
			money.Format(money.LineTotal(item.Price, item.Quantity)))
	}
	w.Flush()
	fmt.Printf("Total: %s (estimate, the server recalculates at checkout)\n",
		money.Format(cart.Total(items)))
}

func init() {
	cartAddCmd.Flags().IntVar(&cartAddQuantity, "quantity", 1, "quantity to add")
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartAdjustCmd, cartSetCmd, cartRemoveCmd, cartClearCmd, cartWatchCmd)
	rootCmd.AddCommand(cartCmd)
}
