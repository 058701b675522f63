package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/collection"
)

// stockroom add --name Laptop --price 1000 --stock 20
func newAddCmd(a *cli) *cobra.Command {
	var (
		name  string
		price float64
		stock int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			p, err := k.Inventory.AddProduct(cmd.Context(), name, price, stock)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().Float64Var(&price, "price", 0, "unit price")
	cmd.Flags().IntVar(&stock, "stock", 0, "units in stock")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// stockroom update <id> [--name] [--price] [--stock]
//
// Only flags that are given are changed.
func newUpdateCmd(a *cli) *cobra.Command {
	var (
		name  string
		price float64
		stock int
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a product's name, price or stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var u models.ProductUpdate
			if cmd.Flags().Changed("name") {
				u.Name = &name
			}
			if cmd.Flags().Changed("price") {
				u.Price = &price
			}
			if cmd.Flags().Changed("stock") {
				u.StockQuantity = &stock
			}

			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			_, err = k.Inventory.UpdateProduct(cmd.Context(), id, u)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&price, "price", 0, "new unit price")
	cmd.Flags().IntVar(&stock, "stock", 0, "new stock quantity")
	return cmd
}

// stockroom remove <id>
func newRemoveCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a product from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			return k.Inventory.RemoveProduct(cmd.Context(), id)
		},
	}
}

// stockroom show <id>
func newShowCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			p, err := k.Inventory.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%d\n", p.ID)
			fmt.Fprintf(w, "Name:\t%s\n", p.Name)
			fmt.Fprintf(w, "Price:\t%.2f\n", p.Price)
			fmt.Fprintf(w, "Stock:\t%d\n", p.StockQuantity)
			return w.Flush()
		},
	}
}

// stockroom list
func newListCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every product with its price and stock",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			products, err := k.Inventory.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No products.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Price, p.StockQuantity)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			low := collection.Count(products, func(p models.Product) bool {
				return p.StockQuantity < k.Inventory.LowStockThreshold()
			})
			fmt.Fprintf(out, "%d products (%d low), stock value %s\n",
				len(products), low, services.StockValue(products).StringFixed(2))
			return nil
		},
	}
}
