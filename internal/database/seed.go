package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jask/inventory/internal/database/repository"
)

// ItemWriter is the write side SeedDemo needs.
type ItemWriter interface {
	InsertItem(ctx context.Context, it repository.Item) (int64, error)
}

type demoItem struct {
	name     string
	price    string
	quantity int
}

var demoItems = []demoItem{
	{"Apples (crate)", "18.50", 12},
	{"Bananas (bunch)", "2.99", 40},
	{"Coffee beans 1kg", "24.00", 6},
	{"Dish soap", "3.75", 0},
	{"Oat milk 1L", "2.40", 18},
	{"Paper towels", "7.20", 9},
	{"Rice 5kg", "11.95", 4},
	{"Tea bags (100)", "5.60", 2},
}

// SeedDemo inserts a small demo catalogue when the table is empty.
// It is idempotent and safe to run on every startup.
func SeedDemo(ctx context.Context, store *repository.ItemRepo, w ItemWriter) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	inserted := 0
	for _, d := range demoItems {
		it := repository.Item{Name: d.name, Price: decimal.RequireFromString(d.price), Quantity: d.quantity}
		if _, err := w.InsertItem(ctx, it); err != nil {
			return inserted, fmt.Errorf("seed %q: %w", d.name, err)
		}
		inserted++
	}
	return inserted, nil
}
