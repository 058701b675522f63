package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/config"
)

// stockroom sale <id> <quantity>
func newSaleCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sale <id> <quantity>",
		Short: "Record a sale and take the units out of stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return models.Invalid("quantity", fmt.Sprintf("The quantity must be an integer, got %q.", args[1]))
			}
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			_, err = k.Inventory.RecordSale(cmd.Context(), id, qty)
			return err
		},
	}
}

// stockroom low-stock [--threshold N]
func newLowStockCmd(a *cli) *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "List products whose stock is below the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = config.LowStockThreshold()
			}
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			low, err := k.Inventory.TrackStock(cmd.Context(), threshold)
			if err != nil {
				return err
			}

			printLowStock(cmd.OutOrStdout(), low)
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "stock level below which a product is low (default from LOW_STOCK_THRESHOLD)")
	return cmd
}

// stockroom report
func newReportCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the stock level of every product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			lines, err := k.Inventory.GenerateReport(cmd.Context())
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

func printLowStock(out io.Writer, low []models.Product) {
	if len(low) == 0 {
		fmt.Fprintln(out, "All products are adequately stocked.")
		return
	}
	fmt.Fprintln(out, "Low stock products:")
	for _, p := range low {
		fmt.Fprintf(out, "  %s: %d units remaining\n", p.Name, p.StockQuantity)
	}
}

func printReport(out io.Writer, lines []services.ReportLine) {
	fmt.Fprintln(out, "Inventory Report:")
	for _, l := range lines {
		if l.LowStock {
			fmt.Fprintf(out, "  %s: %d units (low)\n", l.Name, l.StockQuantity)
		} else {
			fmt.Fprintf(out, "  %s: %d units\n", l.Name, l.StockQuantity)
		}
	}
}
