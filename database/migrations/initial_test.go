package migrations_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/migration"

	_ "github.com/shashiranjanraj/stockroom/database/migrations"
)

func TestSQLiteProductIDsAreNotReused(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())

	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'products'").Scan(&ddl).Error)
	assert.Contains(t, ddl, "AUTOINCREMENT")

	ctx := context.Background()
	store := repositories.NewSQLProductStore(db)
	_, err = store.Create(ctx, "Laptop", 1000, 20)
	require.NoError(t, err)
	printer, err := store.Create(ctx, "Printer", 200, 5)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, printer.ID))

	mouse, err := store.Create(ctx, "Mouse", 25, 9)
	require.NoError(t, err)
	assert.Equal(t, uint(3), mouse.ID)
}

func TestRollbackDropsProducts(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	r := migration.New(db).WithOutput(io.Discard)
	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable("products"))

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable("products"))
}
