package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/catalog"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
	"github.com/marketfoods/storefront/pkg/money"
)

var productsSearch string

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the marketplace catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available products, optionally filtered by name or category",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := app.catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		products = catalog.Filter(products, productsSearch)
		if len(products) == 0 {
			fmt.Println("No products found.")
			return nil
		}
		printProducts(products)
		return nil
	},
}

func printProducts(products []api.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		stock := fmt.Sprintf("%d", p.Stock)
		if p.Stock <= 0 {
			stock = "out of stock"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Category, money.FormatPerUnit(p.Price, p.Unit), stock)
	}
	w.Flush()
}

// findProduct resolves a catalog product by id for commands that take a
// product id on the command line.
func findProduct(ctx context.Context, id int) (api.Product, error) {
	products, err := app.catalog.List(ctx)
	if err != nil {
		return api.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return api.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
}

func init() {
	productsListCmd.Flags().StringVar(&productsSearch, "search", "", "filter by product name or category")
	productsCmd.AddCommand(productsListCmd)
	rootCmd.AddCommand(productsCmd)
}
