package kernel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/pkg/event"
)

func TestBootSQLiteMigratesSchema(t *testing.T) {
	config.Set("CATALOG_STORE", "sql")
	config.Set("DB_DRIVER", "sqlite")
	config.Set("DATABASE_DSN", filepath.Join(t.TempDir(), "inventory.db"))
	t.Cleanup(func() { config.Set("DATABASE_DSN", "") })

	ctx := context.Background()
	k, err := Boot(ctx)
	require.NoError(t, err)
	defer k.Close()

	require.NotNil(t, k.DB)
	assert.True(t, k.DB.Migrator().HasTable("products"))
	assert.IsType(t, &repositories.SQLProductStore{}, k.Store)

	p, err := k.Inventory.AddProduct(ctx, "Laptop", 1000, 20)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
}

func TestBootMemory(t *testing.T) {
	config.Set("CATALOG_STORE", "memory")
	t.Cleanup(func() { config.Set("CATALOG_STORE", "sql") })

	k, err := Boot(context.Background())
	require.NoError(t, err)
	defer k.Close()

	assert.Nil(t, k.DB)
	assert.IsType(t, &repositories.MemoryProductStore{}, k.Store)
}

func TestNewWiresEvents(t *testing.T) {
	k := New(repositories.NewMemoryProductStore())

	var added []string
	k.Events.Listen(event.ProductAdded, func(e event.Event) {
		added = append(added, e.Payload.(models.Product).Name)
	})

	_, err := k.Inventory.AddProduct(context.Background(), "Printer", 200, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Printer"}, added)
	require.NoError(t, k.Close())
}
