package shop

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Checkout places an order for the given cart, all or nothing.
//
// Every line is validated against current stock before any decrement is
// applied; demand for the same product across duplicate lines is
// accumulated so the combined quantity is what gets checked. A cart line
// naming an unknown product rejects the whole checkout rather than being
// skipped. On success the catalog decrements, the order (a priced
// snapshot of the lines in caller order) is appended to the ledger, and
// both changes reach durable storage in the same flush.
func (s *Store) Checkout(ctx context.Context, userID int, lines []CartLine) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := make(map[int]int, len(s.snap.Products))
	for i, p := range s.snap.Products {
		idx[p.ID] = i
	}

	demand := make(map[int]int, len(lines))
	for _, ln := range lines {
		i, ok := idx[ln.ProductID]
		if !ok {
			return Order{}, fmt.Errorf("product %d: %w", ln.ProductID, ErrNotFound)
		}
		demand[ln.ProductID] += ln.Quantity
		if demand[ln.ProductID] > s.snap.Products[i].Quantity {
			return Order{}, &InsufficientStockError{Product: s.snap.Products[i].Name}
		}
	}

	products := slices.Clone(s.snap.Products)
	total := decimal.Zero
	items := make([]OrderItem, 0, len(lines))
	for _, ln := range lines {
		i := idx[ln.ProductID]
		products[i].Quantity -= ln.Quantity
		subtotal := products[i].Price.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		items = append(items, OrderItem{
			ProductID: ln.ProductID,
			Name:      products[i].Name,
			Price:     products[i].Price,
			Quantity:  ln.Quantity,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	order := Order{
		ID:     nextOrderID(s.snap.Orders),
		UserID: userID,
		Items:  items,
		Total:  total,
		Status: StatusCompleted,
	}
	next := s.snap
	next.Products = products
	next.Orders = append(slices.Clone(s.snap.Orders), order)
	if err := s.commit(ctx, next); err != nil {
		return Order{}, err
	}
	return order, nil
}

// OrdersByUser filters the ledger, preserving ledger order.
func (s *Store) OrdersByUser(userID int) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, 0)
	for _, o := range s.snap.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// Stats aggregates the admin dashboard numbers.
type Stats struct {
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProducts int             `json:"total_products"`
	TotalUsers    int             `json:"total_users"`
	Orders        []Order         `json:"orders"`
	Users         []User          `json:"users"`
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	revenue := decimal.Zero
	for _, o := range s.snap.Orders {
		revenue = revenue.Add(o.Total)
	}
	return Stats{
		TotalOrders:   len(s.snap.Orders),
		TotalRevenue:  revenue,
		TotalProducts: len(s.snap.Products),
		TotalUsers:    len(s.snap.Users),
		Orders:        slices.Clone(s.snap.Orders),
		Users:         slices.Clone(s.snap.Users),
	}
}

func nextOrderID(orders []Order) int {
	max := 0
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
