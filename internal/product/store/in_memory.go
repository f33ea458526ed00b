package store

import (
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/shopspring/decimal"
)

// InMemory implements ProductStore on top of an ordered slice.
// A single RWMutex guards both the slice and the ID counter.
type InMemory struct {
	mu       sync.RWMutex
	products []Product
	nextID   int64
}

// NewInMemoryStore creates a store holding the given products in order.
// The ID counter starts after the highest seeded ID.
func NewInMemoryStore(seed ...Product) *InMemory {
	s := &InMemory{
		products: slices.Clone(seed),
		nextID:   1,
	}
	for _, p := range seed {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// SeedProducts is the initial catalog of a freshly started service.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Laptop Dell XPS", Price: decimal.RequireFromString("1200.50"), Quantity: 10},
		{ID: 2, Name: "Mouse Logitech MX Master", Price: decimal.RequireFromString("75.99"), Quantity: 50},
		{ID: 3, Name: "Keyboard HyperX Mechanical", Price: decimal.RequireFromString("110.00"), Quantity: 25},
	}
}

// FindByID retrieves a product by its ID.
func (s *InMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// FindAll retrieves a copy of all products.
func (s *InMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

// Create creates a new product and returns it.
func (s *InMemory) Create(_ context.Context, name string, price decimal.Decimal, quantity int32) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:       s.nextID,
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
	s.nextID++
	s.products = append(s.products, product)

	return &product, nil
}

// Update replaces the mutable fields of a product in place.
func (s *InMemory) Update(_ context.Context, id int64, name string, price decimal.Decimal, quantity int32) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	s.products[i].Name = name
	s.products[i].Price = price
	s.products[i].Quantity = quantity

	p := s.products[i]
	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrProductNotFound
	}
	s.products = slices.Delete(s.products, i, i+1)
	return nil
}

// indexOf must be called with the lock held.
func (s *InMemory) indexOf(id int64) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}
