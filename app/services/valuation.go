package services

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/pkg/collection"
)

// StockValue is the sum of price × stock over products, computed in decimal
// so that cents do not drift. Rows with a non-finite price are skipped.
func StockValue(products []models.Product) decimal.Decimal {
	return collection.Reduce(products, decimal.Zero, func(total decimal.Decimal, p models.Product) decimal.Decimal {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return total
		}
		return total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.StockQuantity))))
	})
}
