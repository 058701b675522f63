package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/storage"
)

func TestExportCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.AddProduct(ctx, "Laptop", 1000, 20)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "Printer", 200, 5)
	require.NoError(t, err)

	disk := storage.NewLocalDisk(t.TempDir())
	n, err := svc.ExportCatalog(ctx, disk, "snapshots/catalog.json")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := disk.Get(ctx, "snapshots/catalog.json")
	require.NoError(t, err)

	var snap services.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Products, 2)
	assert.Equal(t, "Printer", snap.Products[1].Name)
	assert.Equal(t, 5, snap.Products[1].StockQuantity)
	assert.False(t, snap.ExportedAt.IsZero())
}

func TestSnapshotPath(t *testing.T) {
	at := time.Date(2026, 10, 17, 10, 15, 0, 0, time.UTC)
	assert.Equal(t, "snapshots/catalog-20261017T101500Z.json", services.SnapshotPath(at))
}
