// Package shop holds the storefront working set: products, users, admins
// and orders form a single consistency unit, mutated under one lock and
// flushed through one persistence gateway.
package shop

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// Price as decimal to avoid float rounding on totals (NUMERIC in Postgres)
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Year        string          `json:"year"`
}

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Admin struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// CartLine is one requested position of a checkout. Never persisted.
type CartLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderItem snapshots name and price at purchase time, so later catalog
// edits never alter historical orders.
type OrderItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID     int             `json:"id"`
	UserID int             `json:"user_id"`
	Items  []OrderItem     `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Status string          `json:"status"`
}

// StatusCompleted is the only order status this shop issues.
const StatusCompleted = "completed"

// Snapshot is the complete working set as persisted: four flat collections
// in one object. The products key stays "guitars" for compatibility with
// existing store files.
type Snapshot struct {
	Users    []User    `json:"users"`
	Admins   []Admin   `json:"admins"`
	Products []Product `json:"guitars"`
	Orders   []Order   `json:"orders"`
}

// Gateway persists whole snapshots. Load returns the seed snapshot when no
// durable state exists yet; a present-but-unreadable store is an error, not
// a silent fallback.
type Gateway interface {
	Load(ctx context.Context) (Snapshot, error)
	Flush(ctx context.Context, snap Snapshot) error
}
