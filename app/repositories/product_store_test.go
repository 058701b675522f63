package repositories_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/migration"

	_ "github.com/shashiranjanraj/stockroom/database/migrations"
)

func ptr[T any](v T) *T { return &v }

type storeFactory func(t *testing.T) repositories.ProductStore

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) repositories.ProductStore {
			return repositories.NewMemoryProductStore()
		},
		"sqlite": func(t *testing.T) repositories.ProductStore {
			db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "inventory.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.Close(db) })
			require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())
			return repositories.NewSQLProductStore(db)
		},
		"redis": newRedisStore,
	}
}

// newRedisStore talks to REDIS_ADDR (default localhost:6379) under a
// per-test prefix and skips when nothing answers.
func newRedisStore(t *testing.T) repositories.ProductStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := database.OpenRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}

	prefix := fmt.Sprintf("stockroom-test:%d", time.Now().UnixNano())
	t.Cleanup(func() {
		keys, _ := rdb.Keys(context.Background(), prefix+":*").Result()
		if len(keys) > 0 {
			rdb.Del(context.Background(), keys...)
		}
		_ = rdb.Close()
	})
	return repositories.NewRedisProductStore(rdb, prefix)
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s repositories.ProductStore)) {
	for name, factory := range backends() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()

		created, err := s.Create(ctx, "Laptop", 1000, 20)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Laptop", got.Name)
		assert.Equal(t, 1000.0, got.Price)
		assert.Equal(t, 20, got.StockQuantity)
	})
}

func TestCreateRejectsInvalid(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()

		for _, tc := range []struct {
			name  string
			price float64
			stock int
		}{
			{"", 1, 1},
			{"Mouse", -1, 1},
			{"Mouse", 1, -1},
		} {
			_, err := s.Create(ctx, tc.name, tc.price, tc.stock)
			assert.ErrorIs(t, err, models.ErrValidation, "%+v", tc)
		}

		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()

		a, err := s.Create(ctx, "A", 1, 1)
		require.NoError(t, err)
		b, err := s.Create(ctx, "B", 1, 1)
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, b.ID))

		c, err := s.Create(ctx, "C", 1, 1)
		require.NoError(t, err)
		assert.Greater(t, c.ID, b.ID)
		assert.Greater(t, b.ID, a.ID)
	})
}

func TestListInsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()
		for _, n := range []string{"Laptop", "Printer", "Mouse"} {
			_, err := s.Create(ctx, n, 1, 1)
			require.NoError(t, err)
		}

		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Laptop", all[0].Name)
		assert.Equal(t, "Printer", all[1].Name)
		assert.Equal(t, "Mouse", all[2].Name)
	})
}

func TestUpdatePartial(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()
		p, err := s.Create(ctx, "Laptop", 1000, 20)
		require.NoError(t, err)

		updated, err := s.Update(ctx, p.ID, models.ProductUpdate{Price: ptr(1200.0), StockQuantity: ptr(25)})
		require.NoError(t, err)
		assert.Equal(t, "Laptop", updated.Name)
		assert.Equal(t, 1200.0, updated.Price)
		assert.Equal(t, 25, updated.StockQuantity)

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1200.0, got.Price)
		assert.Equal(t, 25, got.StockQuantity)
	})
}

func TestUpdateReturnsCommittedRow(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()
		p, err := s.Create(ctx, "Laptop", 1000, 20)
		require.NoError(t, err)

		updated, err := s.Update(ctx, p.ID, models.ProductUpdate{Name: ptr("  Laptop Pro ")})
		require.NoError(t, err)

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Name, updated.Name)
		assert.Equal(t, "Laptop Pro", updated.Name)
		assert.Equal(t, got.Price, updated.Price)
		assert.Equal(t, got.StockQuantity, updated.StockQuantity)
		assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt), "returned %v, stored %v", updated.UpdatedAt, got.UpdatedAt)
		assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
	})
}

func TestUpdateErrors(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()
		p, err := s.Create(ctx, "Laptop", 1000, 20)
		require.NoError(t, err)

		_, err = s.Update(ctx, p.ID+100, models.ProductUpdate{Name: ptr("X")})
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = s.Update(ctx, p.ID, models.ProductUpdate{Name: ptr("X"), Price: ptr(-5.0)})
		assert.ErrorIs(t, err, models.ErrValidation)

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", got.Name, "failed update must not write")
		assert.Equal(t, 1000.0, got.Price)
	})
}

func TestDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()
		p, err := s.Create(ctx, "Printer", 200, 5)
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, p.ID))
		_, err = s.Get(ctx, p.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, p.ID), models.ErrNotFound)
	})
}

func TestSetStock(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s repositories.ProductStore) {
		ctx := context.Background()
		p, err := s.Create(ctx, "Printer", 200, 5)
		require.NoError(t, err)

		require.NoError(t, s.SetStock(ctx, p.ID, 2))
		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.StockQuantity)
		assert.Equal(t, 200.0, got.Price)

		assert.ErrorIs(t, s.SetStock(ctx, p.ID, -1), models.ErrValidation)
		assert.ErrorIs(t, s.SetStock(ctx, p.ID+100, 1), models.ErrNotFound)
	})
}
