package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
)

// SQLProductStore stores products in the `products` table through gorm.
// The table is created by the products migration.
type SQLProductStore struct {
	db *gorm.DB
}

func NewSQLProductStore(db *gorm.DB) *SQLProductStore {
	return &SQLProductStore{db: db}
}

// Create persists a new product; the database assigns the id.
func (s *SQLProductStore) Create(ctx context.Context, name string, price float64, stockQuantity int) (models.Product, error) {
	p := models.NewProduct(name, price, stockQuantity)
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Product{}, fmt.Errorf("repositories: create product: %w", err)
	}
	return p, nil
}

// Get looks up a product by primary key.
func (s *SQLProductStore) Get(ctx context.Context, id uint) (models.Product, error) {
	return s.first(s.db.WithContext(ctx), id)
}

func (s *SQLProductStore) first(db *gorm.DB, id uint) (models.Product, error) {
	var p models.Product
	err := db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, models.NotFound(id)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: get product %d: %w", id, err)
	}
	return p, nil
}

// List returns all products ordered by id.
func (s *SQLProductStore) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}
	return products, nil
}

// Update writes only the columns u sets, inside a transaction so the
// existence check and the write see the same row.
func (s *SQLProductStore) Update(ctx context.Context, id uint, u models.ProductUpdate) (models.Product, error) {
	if err := u.Validate(); err != nil {
		return models.Product{}, err
	}

	var out models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.first(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&p).Updates(u.Columns()).Error; err != nil {
			return fmt.Errorf("repositories: update product %d: %w", id, err)
		}
		out, err = s.first(tx, id)
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// Delete removes the row for id.
func (s *SQLProductStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("repositories: delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NotFound(id)
	}
	return nil
}

// SetStock overwrites stock_quantity in a single UPDATE.
func (s *SQLProductStore) SetStock(ctx context.Context, id uint, quantity int) error {
	if err := checkStock(quantity); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	res := db.Model(&models.Product{}).Where("id = ?", id).Update("stock_quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("repositories: set stock %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports 0 affected rows when the value is unchanged.
		if _, err := s.first(db, id); err != nil {
			return err
		}
	}
	return nil
}
