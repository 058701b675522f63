package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/stockroom/app/models"
)

// MemoryProductStore keeps products in a map. Ids come from a counter that
// only moves forward, so deleted ids are never handed out again.
type MemoryProductStore struct {
	mu     sync.RWMutex
	m      map[uint]models.Product
	order  []uint
	nextID uint
	now    func() time.Time
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{m: make(map[uint]models.Product), now: time.Now}
}

func (s *MemoryProductStore) Create(_ context.Context, name string, price float64, stockQuantity int) (models.Product, error) {
	p := models.NewProduct(name, price, stockQuantity)
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.m[p.ID] = p
	s.order = append(s.order, p.ID)
	return p, nil
}

func (s *MemoryProductStore) Get(_ context.Context, id uint) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return models.Product{}, models.NotFound(id)
	}
	return p, nil
}

func (s *MemoryProductStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.m[id])
	}
	return out, nil
}

func (s *MemoryProductStore) Update(_ context.Context, id uint, u models.ProductUpdate) (models.Product, error) {
	if err := u.Validate(); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return models.Product{}, models.NotFound(id)
	}
	p = u.Apply(p)
	p.UpdatedAt = s.now()
	s.m[id] = p
	return p, nil
}

func (s *MemoryProductStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return models.NotFound(id)
	}
	delete(s.m, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryProductStore) SetStock(_ context.Context, id uint, quantity int) error {
	if err := checkStock(quantity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return models.NotFound(id)
	}
	p.StockQuantity = quantity
	p.UpdatedAt = s.now()
	s.m[id] = p
	return nil
}
