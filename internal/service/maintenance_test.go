package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/inventory/internal/database/dbtest"
	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/notify"
)

func TestResetClearsItemsAndNotifies(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	store := repository.NewItemRepo(db)
	id, err := store.Insert(ctx, repository.Item{Name: "Lamp", Price: decimal.NewFromInt(30), Quantity: 1})
	require.NoError(t, err)

	hub := notify.NewHub()
	changed, cancel := hub.Subscribe(repository.Table)
	defer cancel()

	svc := &MaintenanceService{DB: db, Hub: hub}
	require.NoError(t, svc.Reset(ctx))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	select {
	case <-changed:
	default:
		t.Fatal("reset should invalidate the items table")
	}

	again, err := store.Insert(ctx, repository.Item{Name: "Desk", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.LessOrEqual(t, again, id, "id numbering restarts")

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
