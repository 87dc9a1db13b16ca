package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/pkg/money"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.session.Current(cmd.Context())
		result := app.orders.List(cmd.Context(), snap.UserID)
		if result.FromLocal {
			fmt.Println("Server unavailable, showing locally saved orders.")
		}
		if len(result.Entries) == 0 {
			fmt.Println("No orders yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tDATE\tITEMS\tTOTAL\tDELIVERY")
		for _, entry := range result.Entries {
			lines := make([]string, 0, len(entry.Lines))
			for _, line := range entry.Lines {
				lines = append(lines, fmt.Sprintf("%s x%d", line.Name, line.Quantity))
			}
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\n",
				entry.OrderID,
				entry.CreatedAt.Format("2006-01-02"),
				strings.Join(lines, ", "),
				money.FormatFloat(entry.TotalPrice),
				entry.DeliveryAddress)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}
