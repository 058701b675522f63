package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/pkg/storage"
)

// stockroom export [--disk local|s3] [--path snapshots/catalog.json]
func newExportCmd(a *cli) *cobra.Command {
	var disk, path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of the catalog to local disk or S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if disk == "" {
				disk = config.StorageDisk()
			}
			if path == "" {
				path = services.SnapshotPath(time.Now())
			}

			d, err := storage.Open(cmd.Context(), disk)
			if err != nil {
				return err
			}
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			n, err := k.Inventory.ExportCatalog(cmd.Context(), d, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", n, d.Location(path))
			return nil
		},
	}
	cmd.Flags().StringVar(&disk, "disk", "", "local or s3 (default from STORAGE_DISK)")
	cmd.Flags().StringVar(&path, "path", "", "snapshot path on the disk (default snapshots/catalog-<time>.json)")
	return cmd
}
