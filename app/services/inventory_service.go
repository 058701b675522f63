package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/pkg/collection"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/metrics"
)

// DefaultLowStockThreshold is the stock level below which a product is low.
const DefaultLowStockThreshold = 10

// ReportLine is one row of the restock report.
type ReportLine struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	LowStock      bool   `json:"low_stock"`
}

// InventoryService implements the inventory operations on top of a
// ProductStore. It keeps no product state of its own between calls.
type InventoryService struct {
	store     repositories.ProductStore
	events    *event.Dispatcher
	metrics   *metrics.Inventory
	log       *slog.Logger
	threshold int
}

// Option configures an InventoryService.
type Option func(*InventoryService)

// WithEvents fires domain events on d. Without it a private dispatcher with
// no listeners is used.
func WithEvents(d *event.Dispatcher) Option {
	return func(s *InventoryService) { s.events = d }
}

// WithMetrics records every operation on m.
func WithMetrics(m *metrics.Inventory) Option {
	return func(s *InventoryService) { s.metrics = m }
}

// WithLogger overrides the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *InventoryService) { s.log = l }
}

// WithLowStockThreshold sets the threshold GenerateReport uses to flag rows
// and the low-stock gauge is measured against.
func WithLowStockThreshold(n int) Option {
	return func(s *InventoryService) { s.threshold = n }
}

func NewInventoryService(store repositories.ProductStore, opts ...Option) *InventoryService {
	s := &InventoryService{
		store:     store,
		events:    event.New(),
		log:       logger.L,
		threshold: DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LowStockThreshold is the level GenerateReport flags against.
func (s *InventoryService) LowStockThreshold() int { return s.threshold }

// AddProduct creates a product and fires ProductAdded.
func (s *InventoryService) AddProduct(ctx context.Context, name string, price float64, stockQuantity int) (p models.Product, err error) {
	defer s.observe("add_product", time.Now(), &err)

	p, err = s.store.Create(ctx, name, price, stockQuantity)
	if err != nil {
		return models.Product{}, err
	}
	s.log.Info("product added", "product_id", p.ID, "name", p.Name)
	s.events.Fire(event.ProductAdded, p)
	return p, nil
}

// UpdateProduct applies a partial update and fires ProductUpdated.
func (s *InventoryService) UpdateProduct(ctx context.Context, id uint, u models.ProductUpdate) (p models.Product, err error) {
	defer s.observe("update_product", time.Now(), &err)

	p, err = s.store.Update(ctx, id, u)
	if err != nil {
		return models.Product{}, err
	}
	s.log.Info("product updated", "product_id", p.ID)
	s.events.Fire(event.ProductUpdated, p)
	return p, nil
}

// RemoveProduct deletes a product and fires ProductRemoved.
func (s *InventoryService) RemoveProduct(ctx context.Context, id uint) (err error) {
	defer s.observe("remove_product", time.Now(), &err)

	if err = s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product removed", "product_id", id)
	s.events.Fire(event.ProductRemoved, event.Removed{ProductID: id})
	return nil
}

// RecordSale takes quantity units out of stock. A sale larger than the stock
// on hand fails with *models.InsufficientStockError and changes nothing.
func (s *InventoryService) RecordSale(ctx context.Context, id uint, quantity int) (p models.Product, err error) {
	defer s.observe("record_sale", time.Now(), &err)

	if quantity <= 0 {
		return models.Product{}, models.Invalid("quantity", "The quantity must be greater than 0.")
	}

	p, err = s.store.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if p.StockQuantity < quantity {
		return models.Product{}, &models.InsufficientStockError{
			ProductID: p.ID,
			Name:      p.Name,
			Requested: quantity,
			Available: p.StockQuantity,
		}
	}

	remaining := p.StockQuantity - quantity
	if err = s.store.SetStock(ctx, id, remaining); err != nil {
		return models.Product{}, err
	}
	p.StockQuantity = remaining

	if s.metrics != nil {
		s.metrics.UnitsSold.Add(float64(quantity))
	}
	s.log.Info("sale recorded", "product_id", id, "quantity", quantity, "remaining", remaining)
	s.events.Fire(event.SaleRecorded, event.Sale{
		ProductID: id,
		Name:      p.Name,
		Quantity:  quantity,
		Remaining: remaining,
	})
	return p, nil
}

// TrackStock returns the products whose stock is below threshold, in store
// order. It only reads.
func (s *InventoryService) TrackStock(ctx context.Context, threshold int) (low []models.Product, err error) {
	defer s.observe("track_stock", time.Now(), &err)

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	low = collection.Filter(all, func(p models.Product) bool { return p.StockQuantity < threshold })

	if s.metrics != nil {
		s.metrics.Products.Set(float64(len(all)))
		s.refreshLowStock(all)
	}
	return low, nil
}

// GenerateReport lists the stock level of every product. It is a restock
// status listing; no sales history is kept.
func (s *InventoryService) GenerateReport(ctx context.Context) (lines []ReportLine, err error) {
	defer s.observe("generate_report", time.Now(), &err)

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	lines = collection.Map(all, func(p models.Product) ReportLine {
		return ReportLine{
			ProductID:     p.ID,
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			LowStock:      p.StockQuantity < s.threshold,
		}
	})

	if s.metrics != nil {
		s.metrics.Products.Set(float64(len(all)))
		s.refreshLowStock(all)
	}
	return lines, nil
}

// GetProduct returns a single product.
func (s *InventoryService) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	return s.store.Get(ctx, id)
}

// ListProducts returns every product in store order.
func (s *InventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.List(ctx)
}

// refreshLowStock sets the low-stock gauge against the configured threshold,
// whatever threshold the caller asked TrackStock about.
func (s *InventoryService) refreshLowStock(all []models.Product) {
	s.metrics.LowStockProducts.Set(float64(collection.Count(all, func(p models.Product) bool {
		return p.StockQuantity < s.threshold
	})))
}

func (s *InventoryService) observe(op string, start time.Time, errp *error) {
	result := Result(*errp)
	if result == "error" {
		s.log.Error("inventory operation failed", "operation", op, "error", *errp)
	} else if result != "ok" {
		s.log.Debug("inventory operation rejected", "operation", op, "result", result, "error", *errp)
	}
	if s.metrics != nil {
		s.metrics.Observe(op, result, time.Since(start))
	}
}

// Result classifies err into the label used for metrics and logs.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrValidation):
		return "invalid"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "error"
	}
}
