package seeders

import (
	"context"

	"github.com/shashiranjanraj/stockroom/app/repositories"
)

func init() {
	Register("demo", SeedDemo)
}

// DemoProducts is the starter catalog.
var DemoProducts = []struct {
	Name          string
	Price         float64
	StockQuantity int
}{
	{"Laptop", 1000, 20},
	{"Printer", 200, 5},
}

// SeedDemo adds DemoProducts to an empty store and leaves a populated one
// alone, so running it twice does not duplicate rows.
func SeedDemo(ctx context.Context, store repositories.ProductStore) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range DemoProducts {
		if _, err := store.Create(ctx, p.Name, p.Price, p.StockQuantity); err != nil {
			return err
		}
	}
	return nil
}
