package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/checkout"
	"github.com/marketfoods/storefront/pkg/money"
)

var (
	checkoutAddress string
	checkoutPhone   string
	checkoutComment string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.session.Current(cmd.Context())
		record, err := app.checkout.Submit(cmd.Context(), checkout.Input{
			UserID:          snap.UserID,
			DeliveryAddress: checkoutAddress,
			PhoneNumber:     checkoutPhone,
			Comment:         checkoutComment,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Order #%d placed. Total: %s\n",
			record.OrderID, money.FormatFloat(record.TotalPrice))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutAddress, "address", "", "delivery address")
	checkoutCmd.Flags().StringVar(&checkoutPhone, "phone", "", "contact phone number")
	checkoutCmd.Flags().StringVar(&checkoutComment, "comment", "", "optional note for the seller")
	rootCmd.AddCommand(checkoutCmd)
}
