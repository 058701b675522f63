package models

import (
	"strings"
	"time"

	"github.com/shashiranjanraj/stockroom/pkg/validate"
)

// Product is a catalog record. ID is assigned by the store and never reused.
type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name          string    `gorm:"size:255;not null"            json:"name"           validate:"required,max=255"`
	Price         float64   `gorm:"not null;default:0"           json:"price"          validate:"finite,gte=0"`
	StockQuantity int       `gorm:"not null;default:0;index"     json:"stock_quantity" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// NewProduct builds an unsaved product with a trimmed name.
func NewProduct(name string, price float64, stockQuantity int) Product {
	return Product{Name: strings.TrimSpace(name), Price: price, StockQuantity: stockQuantity}
}

// Validate checks the product's fields.
func (p Product) Validate() error {
	if errs := validate.Struct(p); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// ProductUpdate is an explicit partial update. A nil field is left unchanged.
type ProductUpdate struct {
	Name          *string  `json:"name,omitempty"           validate:"nullable,required,max=255"`
	Price         *float64 `json:"price,omitempty"          validate:"nullable,finite,gte=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"nullable,gte=0"`
}

// Empty reports whether no field is set.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.StockQuantity == nil
}

// Validate checks every set field. An empty update is rejected.
func (u ProductUpdate) Validate() error {
	if u.Empty() {
		return &ValidationError{Fields: map[string]string{
			"update": "At least one of name, price or stock_quantity must be given.",
		}}
	}
	if errs := validate.Struct(u); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Apply returns p with the set fields of u copied over. It does not validate.
func (u ProductUpdate) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.StockQuantity != nil {
		p.StockQuantity = *u.StockQuantity
	}
	return p
}

// Columns returns the set fields keyed by column name.
func (u ProductUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if u.Name != nil {
		cols["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Price != nil {
		cols["price"] = *u.Price
	}
	if u.StockQuantity != nil {
		cols["stock_quantity"] = *u.StockQuantity
	}
	return cols
}
