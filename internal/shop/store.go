package shop

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Store owns the working set. One mutex covers every read-check-then-write
// sequence, so concurrent checkouts cannot oversell and flushes never
// capture a half-applied mutation.
//
// Mutations are copy-on-write: the next state is built aside, flushed
// through the gateway, and only installed once the flush succeeded. A
// failed flush therefore surfaces as an error and leaves the working set
// untouched.
type Store struct {
	mu   sync.Mutex
	gw   Gateway
	snap Snapshot
}

// Open loads the working set through the gateway. A corrupt durable store
// fails here rather than being silently replaced with seed data.
func Open(ctx context.Context, gw Gateway) (*Store, error) {
	snap, err := gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	return &Store{gw: gw, snap: snap}, nil
}

// commit flushes the candidate snapshot and installs it on success.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, next Snapshot) error {
	if err := s.gw.Flush(ctx, next); err != nil {
		return fmt.Errorf("flush store: %w", err)
	}
	s.snap = next
	return nil
}

// NewProduct carries the fields of a catalog create; the store assigns
// the id.
type NewProduct struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Image       string
	Description string
	Brand       string
	Year        string
}

// ProductPatch is a partial update: only non-nil fields are applied, so a
// supplied zero (price 0, quantity 0) is honored and an omitted field is
// left alone.
type ProductPatch struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Quantity    *int
	Image       *string
	Description *string
	Brand       *string
	Year        *string
}

// Products returns the catalog in insertion order.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.snap.Products)
}

func (s *Store) Product(id int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.snap.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return s.snap.Products[i], nil
}

// ProductsByCategory matches the category exactly but case-insensitively.
func (s *Store) ProductsByCategory(category string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, 0)
	for _, p := range s.snap.Products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) CreateProduct(ctx context.Context, np NewProduct) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Product{
		ID:          nextProductID(s.snap.Products),
		Name:        np.Name,
		Category:    np.Category,
		Price:       np.Price,
		Quantity:    np.Quantity,
		Image:       np.Image,
		Description: np.Description,
		Brand:       np.Brand,
		Year:        np.Year,
	}
	next := s.snap
	next.Products = append(slices.Clone(s.snap.Products), p)
	if err := s.commit(ctx, next); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int, patch ProductPatch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.snap.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	products := slices.Clone(s.snap.Products)
	p := &products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Year != nil {
		p.Year = *patch.Year
	}
	next := s.snap
	next.Products = products
	if err := s.commit(ctx, next); err != nil {
		return Product{}, err
	}
	return products[i], nil
}

// DeleteProduct removes and returns the record. Historical orders keep
// their own snapshots, so no cascade happens here.
func (s *Store) DeleteProduct(ctx context.Context, id int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.snap.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	removed := s.snap.Products[i]
	next := s.snap
	next.Products = slices.Delete(slices.Clone(s.snap.Products), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return Product{}, err
	}
	return removed, nil
}

// MarkSoldOut zeroes the stock but keeps the product visible, unlike
// DeleteProduct.
func (s *Store) MarkSoldOut(ctx context.Context, id int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.snap.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	products := slices.Clone(s.snap.Products)
	products[i].Quantity = 0
	next := s.snap
	next.Products = products
	if err := s.commit(ctx, next); err != nil {
		return Product{}, err
	}
	return products[i], nil
}

// nextProductID assigns max+1, or 1 on an empty catalog. Deleted ids are
// not reused unless the whole catalog drained first.
func nextProductID(products []Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
