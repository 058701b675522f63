package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/internal/kernel"
)

// stockroom demo
//
// Runs the classic walkthrough against a throwaway in-memory catalog.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through adding, updating, selling and reporting in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			k := kernel.New(repositories.NewMemoryProductStore())
			defer k.Close()
			announce(k.Events, out)
			inv := k.Inventory

			laptop, err := inv.AddProduct(ctx, "Laptop", 1000, 20)
			if err != nil {
				return err
			}
			if _, err := inv.AddProduct(ctx, "Printer", 200, 5); err != nil {
				return err
			}

			price, stock := 1200.0, 25
			if _, err := inv.UpdateProduct(ctx, laptop.ID, models.ProductUpdate{Price: &price, StockQuantity: &stock}); err != nil {
				return err
			}
			if _, err := inv.RecordSale(ctx, laptop.ID, 2); err != nil {
				return err
			}

			low, err := inv.TrackStock(ctx, inv.LowStockThreshold())
			if err != nil {
				return err
			}
			printLowStock(out, low)

			lines, err := inv.GenerateReport(ctx)
			if err != nil {
				return err
			}
			printReport(out, lines)
			return nil
		},
	}
}
