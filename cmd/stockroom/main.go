package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/internal/kernel"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &cli{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.shutdown(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// cli holds the flags shared by every command and the kernel booted for
// the one that runs.
type cli struct {
	store       string
	dsn         string
	metricsFile string

	kernel *kernel.Kernel
}

func newRootCmd(a *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "stockroom",
		Short:         "Stockroom: a small inventory tool",
		Long:          "Stockroom keeps a product catalog with stock levels, records sales and reports low stock.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.store != "" {
				config.Set("CATALOG_STORE", a.store)
			}
			if a.dsn != "" {
				config.Set("DATABASE_DSN", a.dsn)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.store, "store", "", "catalog store: sql, redis or memory (default from CATALOG_STORE)")
	pf.StringVar(&a.dsn, "db", "", "database DSN for the sql store (default from DATABASE_DSN)")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	// Catalog
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newListCmd(a))

	// Stock
	root.AddCommand(newSaleCmd(a))
	root.AddCommand(newLowStockCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newDemoCmd())

	// Database
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newMigrateRollbackCmd())
	root.AddCommand(newMigrateStatusCmd())
	root.AddCommand(newSeedCmd(a))

	return root
}

// boot opens the configured store and prints a confirmation line to the
// command's output for every catalog change.
func (a *cli) boot(cmd *cobra.Command) (*kernel.Kernel, error) {
	if a.kernel != nil {
		return a.kernel, nil
	}
	k, err := kernel.Boot(cmd.Context())
	if err != nil {
		return nil, err
	}
	announce(k.Events, cmd.OutOrStdout())
	a.kernel = k
	return k, nil
}

// shutdown writes the metrics file, if asked for, and closes the kernel.
func (a *cli) shutdown() error {
	if a.kernel == nil {
		return nil
	}
	k := a.kernel
	a.kernel = nil

	var werr error
	if a.metricsFile != "" {
		werr = k.Metrics.WriteTextfile(a.metricsFile)
	}
	if err := k.Close(); err != nil {
		logger.Warn("close kernel", "error", err)
	}
	return werr
}

func announce(d *event.Dispatcher, out io.Writer) {
	d.Listen(event.ProductAdded, func(e event.Event) {
		fmt.Fprintf(out, "Product '%s' added successfully!\n", e.Payload.(models.Product).Name)
	})
	d.Listen(event.ProductUpdated, func(e event.Event) {
		fmt.Fprintf(out, "Product '%s' updated successfully!\n", e.Payload.(models.Product).Name)
	})
	d.Listen(event.ProductRemoved, func(e event.Event) {
		fmt.Fprintf(out, "Product %d removed successfully.\n", e.Payload.(event.Removed).ProductID)
	})
	d.Listen(event.SaleRecorded, func(e event.Event) {
		s := e.Payload.(event.Sale)
		fmt.Fprintf(out, "Sale recorded for '%s'. %d units sold.\n", s.Name, s.Quantity)
	})
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return 0, models.Invalid("id", fmt.Sprintf("The id must be a positive integer, got %q.", s))
	}
	return uint(n), nil
}
