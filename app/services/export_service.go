package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/pkg/storage"
)

// Snapshot is the JSON document written by ExportCatalog.
type Snapshot struct {
	ExportedAt time.Time        `json:"exported_at"`
	Products   []models.Product `json:"products"`
}

// ExportCatalog writes every product as a JSON snapshot to path on disk and
// returns the number of products written.
func (s *InventoryService) ExportCatalog(ctx context.Context, disk storage.Disk, path string) (n int, err error) {
	defer s.observe("export_catalog", time.Now(), &err)

	products, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(Snapshot{ExportedAt: time.Now().UTC(), Products: products}, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("services: encode snapshot: %w", err)
	}
	if err := disk.Put(ctx, path, data); err != nil {
		return 0, err
	}

	s.log.Info("catalog exported", "products", len(products), "location", disk.Location(path))
	return len(products), nil
}

// SnapshotPath names a snapshot file after t, e.g. snapshots/catalog-20261017T101500Z.json.
func SnapshotPath(t time.Time) string {
	return "snapshots/catalog-" + t.UTC().Format("20060102T150405Z") + ".json"
}
