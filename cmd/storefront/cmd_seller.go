package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/seller"
	"github.com/marketfoods/storefront/pkg/api"
	"github.com/marketfoods/storefront/pkg/money"
)

var (
	sellerName        string
	sellerDescription string
	sellerCategory    string
	sellerUnit        string
	sellerPrice       float64
	sellerStock       int
	sellerImagePath   string
)

var sellerCmd = &cobra.Command{
	Use:   "seller",
	Short: "Manage your own products and incoming orders",
}

var sellerProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the products you sell",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := app.seller.MyProducts(cmd.Context())
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("You have no products yet.")
			return nil
		}
		printProducts(products)
		return nil
	},
}

var sellerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product with an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		image, cleanup, err := openImage(sellerImagePath)
		if err != nil {
			return err
		}
		defer cleanup()
		id, err := app.seller.Create(cmd.Context(), sellerInput(), image)
		if err != nil {
			return err
		}
		fmt.Printf("Product #%d created.\n", id)
		return nil
	},
}

var sellerUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product, optionally replacing its image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("product id must be a number: %q", args[0])
		}
		image, cleanup, err := openImage(sellerImagePath)
		if err != nil {
			return err
		}
		defer cleanup()
		if err := app.seller.Update(cmd.Context(), id, sellerInput(), image); err != nil {
			return err
		}
		fmt.Printf("Product #%d updated.\n", id)
		return nil
	},
}

var sellerDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete one of your products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("product id must be a number: %q", args[0])
		}
		if err := app.seller.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Product #%d deleted.\n", id)
		return nil
	},
}

var sellerOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show incoming orders for your products",
	RunE: func(cmd *cobra.Command, args []string) error {
		incoming, err := app.seller.Orders(cmd.Context())
		if err != nil {
			return err
		}
		if len(incoming) == 0 {
			fmt.Println("No incoming orders.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tBUYER\tITEMS\tYOUR TOTAL\tDELIVERY\tPHONE")
		for _, order := range incoming {
			lines := make([]string, 0, len(order.Items))
			for _, item := range order.Items {
				lines = append(lines, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
			}
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\n",
				order.ID, order.BuyerName, strings.Join(lines, ", "),
				money.FormatFloat(order.SellerTotal),
				order.DeliveryAddress, order.PhoneNumber)
		}
		w.Flush()
		return nil
	},
}

func sellerInput() seller.Input {
	return seller.Input{
		Name:        sellerName,
		Description: sellerDescription,
		Category:    sellerCategory,
		Unit:        sellerUnit,
		Price:       sellerPrice,
		Stock:       sellerStock,
	}
}

// openImage opens the flag-supplied image file. A blank path means no
// image; create requires one, update treats it as "keep the current
// image".
func openImage(path string) (*api.ImageUpload, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening image: %w", err)
	}
	upload := &api.ImageUpload{
		Filename: filepath.Base(path),
		Content:  file,
	}
	return upload, func() { file.Close() }, nil
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sellerName, "name", "", "product name")
	cmd.Flags().StringVar(&sellerDescription, "description", "", "product description")
	cmd.Flags().StringVar(&sellerCategory, "category", "", "product category")
	cmd.Flags().StringVar(&sellerUnit, "unit", api.UnitPiece, "unit of sale: piece, kg or pack")
	cmd.Flags().Float64Var(&sellerPrice, "price", 0, "price per unit")
	cmd.Flags().IntVar(&sellerStock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&sellerImagePath, "image", "", "path to the product image file")
}

func init() {
	addProductFlags(sellerCreateCmd)
	addProductFlags(sellerUpdateCmd)
	sellerCmd.AddCommand(sellerProductsCmd, sellerCreateCmd, sellerUpdateCmd, sellerDeleteCmd, sellerOrdersCmd)
	rootCmd.AddCommand(sellerCmd)
}
