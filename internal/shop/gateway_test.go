package shop_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/strumworks/guitarshop/internal/shop"
)

// memGateway keeps snapshots in memory and can be told to fail flushes.
type memGateway struct {
	snap     shop.Snapshot
	flushes  int
	flushErr error
}

func (g *memGateway) Load(ctx context.Context) (shop.Snapshot, error) {
	return g.snap, nil
}

func (g *memGateway) Flush(ctx context.Context, snap shop.Snapshot) error {
	if g.flushErr != nil {
		return g.flushErr
	}
	g.snap = snap
	g.flushes++
	return nil
}

func newStore(t *testing.T, snap shop.Snapshot) (*shop.Store, *memGateway) {
	t.Helper()
	gw := &memGateway{snap: snap}
	st, err := shop.Open(context.Background(), gw)
	require.NoError(t, err)
	return st, gw
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func product(id int, name, category string, price int64, qty int) shop.Product {
	return shop.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    dec(price),
		Quantity: qty,
		Brand:    "Test",
		Year:     "2024",
	}
}
