// Package kernel boots the application: it reads configuration, opens the
// configured catalog store, and wires the inventory service with its event
// dispatcher, metrics and log sinks.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/metrics"
	"github.com/shashiranjanraj/stockroom/pkg/migration"

	// Register migrations so Boot can bring the schema up to date.
	_ "github.com/shashiranjanraj/stockroom/database/migrations"
)

// Kernel owns everything a command needs. Call Close when done.
type Kernel struct {
	Store     repositories.ProductStore
	Inventory *services.InventoryService
	Events    *event.Dispatcher
	Metrics   *metrics.Inventory
	DB        *gorm.DB // nil unless the store is sql

	closers []func() error
}

// Boot opens the store named by CATALOG_STORE. For the sql store pending
// migrations are applied first, so a fresh database file is usable at once.
func Boot(ctx context.Context) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	k := &Kernel{}

	if uri := config.LogMongoURI(); uri != "" {
		closeMongo, err := logger.AttachMongo(uri, config.LogMongoDatabase(), config.LogMongoCollection())
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			k.closers = append(k.closers, func() error { closeMongo(); return nil })
		}
	}

	store, err := k.openStore(ctx, config.CatalogStore())
	if err != nil {
		_ = k.Close()
		return nil, err
	}

	k.wire(store)
	return k, nil
}

// New wires a kernel around an existing store, e.g. a MemoryProductStore.
func New(store repositories.ProductStore) *Kernel {
	k := &Kernel{}
	k.wire(store)
	return k
}

func (k *Kernel) wire(store repositories.ProductStore) {
	k.Store = store
	k.Events = event.New()
	k.Metrics = metrics.New()
	k.Inventory = services.NewInventoryService(store,
		services.WithEvents(k.Events),
		services.WithMetrics(k.Metrics),
		services.WithLowStockThreshold(config.LowStockThreshold()),
	)
}

func (k *Kernel) openStore(ctx context.Context, kind string) (repositories.ProductStore, error) {
	logger.Debug("opening catalog store", "store", kind)

	switch kind {
	case "memory":
		return repositories.NewMemoryProductStore(), nil

	case "redis":
		rdb, err := database.ConnectRedis(ctx)
		if err != nil {
			return nil, err
		}
		k.closers = append(k.closers, rdb.Close)
		return repositories.NewRedisProductStore(rdb, "stockroom"), nil

	default:
		if err := database.Connect(); err != nil {
			return nil, err
		}
		db := database.DB
		k.DB = db
		k.closers = append(k.closers, func() error { return database.Close(db) })

		if err := migration.New(db).WithOutput(io.Discard).Run(); err != nil {
			return nil, err
		}
		return repositories.NewSQLProductStore(db), nil
	}
}

// Close releases connections in reverse order of opening.
func (k *Kernel) Close() error {
	var errs []error
	for i := len(k.closers) - 1; i >= 0; i-- {
		if err := k.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	k.closers = nil
	return errors.Join(errs...)
}
