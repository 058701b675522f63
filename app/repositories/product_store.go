// Package repositories holds the catalog store: the single owner of product
// records. Three backends satisfy ProductStore: SQL via gorm, Redis, and an
// in-memory map.
package repositories

import (
	"context"

	"github.com/shashiranjanraj/stockroom/app/models"
)

// ProductStore persists products keyed by a store-assigned id.
//
// Mutating calls commit before they return. Failures wrap models.ErrNotFound
// or are a *models.ValidationError, and leave stored state untouched.
type ProductStore interface {
	Create(ctx context.Context, name string, price float64, stockQuantity int) (models.Product, error)
	Get(ctx context.Context, id uint) (models.Product, error)
	// List returns every product in insertion order.
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id uint, u models.ProductUpdate) (models.Product, error)
	Delete(ctx context.Context, id uint) error
	SetStock(ctx context.Context, id uint, quantity int) error
}

func checkStock(quantity int) error {
	if quantity < 0 {
		return models.Invalid("stock_quantity", "The stock_quantity must be greater than or equal to 0.")
	}
	return nil
}
