package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/pkg/migration"
)

func init() {
	migration.Register("20261017000000_create_products_table", &CreateProductsTable{})
}

// CreateProductsTable creates `products`. Deleted ids must never be handed
// out again.
type CreateProductsTable struct{}

// gorm's sqlite dialect declares the key as a plain INTEGER PRIMARY KEY,
// which lets SQLite reuse the highest rowid after a delete. AUTOINCREMENT
// keeps a high-water mark in sqlite_sequence instead.
const sqliteProductsTable = `CREATE TABLE IF NOT EXISTS products (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           VARCHAR(255) NOT NULL,
	price          REAL NOT NULL DEFAULT 0,
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	created_at     DATETIME,
	updated_at     DATETIME
)`

const sqliteStockIndex = `CREATE INDEX IF NOT EXISTS idx_products_stock_quantity ON products (stock_quantity)`

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return db.AutoMigrate(&models.Product{})
	}
	if err := db.Exec(sqliteProductsTable).Error; err != nil {
		return err
	}
	return db.Exec(sqliteStockIndex).Error
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
