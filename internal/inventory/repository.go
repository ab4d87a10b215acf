// Package inventory is the repository the screens talk to: writes go to the
// item store and invalidate it, reads are live streams that re-query after
// every invalidation.
package inventory

import (
	"context"
	"fmt"
	"log"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/notify"
)

// ItemsRepository is the contract consumed by the screen state holders.
type ItemsRepository interface {
	// StreamAll emits every item, ordered by name, now and after each change.
	StreamAll(ctx context.Context) <-chan []repository.Item
	// StreamOne emits the item with id, or nil while it does not exist.
	StreamOne(ctx context.Context, id int64) <-chan *repository.Item
	GetItem(ctx context.Context, id int64) (*repository.Item, error)
	InsertItem(ctx context.Context, it repository.Item) (int64, error)
	UpdateItem(ctx context.Context, it repository.Item) error
	DeleteItem(ctx context.Context, it repository.Item) error
}

// OfflineItemsRepository backs ItemsRepository with the local item store.
type OfflineItemsRepository struct {
	store *repository.ItemRepo
	hub   *notify.Hub
}

var _ ItemsRepository = (*OfflineItemsRepository)(nil)

func NewOfflineItemsRepository(store *repository.ItemRepo, hub *notify.Hub) *OfflineItemsRepository {
	return &OfflineItemsRepository{store: store, hub: hub}
}

func (r *OfflineItemsRepository) InsertItem(ctx context.Context, it repository.Item) (int64, error) {
	id, err := r.store.Insert(ctx, it)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	r.hub.Invalidate(ctx, repository.Table)
	return id, nil
}

func (r *OfflineItemsRepository) UpdateItem(ctx context.Context, it repository.Item) error {
	if err := r.store.Update(ctx, it); err != nil {
		return fmt.Errorf("update item %d: %w", it.ID, err)
	}
	r.hub.Invalidate(ctx, repository.Table)
	return nil
}

func (r *OfflineItemsRepository) DeleteItem(ctx context.Context, it repository.Item) error {
	if err := r.store.Delete(ctx, it); err != nil {
		return fmt.Errorf("delete item %d: %w", it.ID, err)
	}
	r.hub.Invalidate(ctx, repository.Table)
	return nil
}

// DeleteAll empties the store.
func (r *OfflineItemsRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	r.hub.Invalidate(ctx, repository.Table)
	return n, nil
}

func (r *OfflineItemsRepository) GetItem(ctx context.Context, id int64) (*repository.Item, error) {
	it, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return it, nil
}

func (r *OfflineItemsRepository) ListItems(ctx context.Context) ([]repository.Item, error) {
	items, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *OfflineItemsRepository) StreamAll(ctx context.Context) <-chan []repository.Item {
	return live(ctx, r.hub, func(ctx context.Context) ([]repository.Item, error) {
		return r.store.List(ctx)
	})
}

func (r *OfflineItemsRepository) StreamOne(ctx context.Context, id int64) <-chan *repository.Item {
	return live(ctx, r.hub, func(ctx context.Context) (*repository.Item, error) {
		return r.store.Get(ctx, id)
	})
}

// live runs query once up front and again after each invalidation of the
// items table, until ctx ends. Failed queries are logged and skipped.
func live[T any](ctx context.Context, hub *notify.Hub, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T)
	// subscribe before the first query so no write slips between them
	changed, unsubscribe := hub.Subscribe(repository.Table)
	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			v, err := query(ctx)
			switch {
			case ctx.Err() != nil:
				return
			case err != nil:
				log.Printf("inventory: live query: %v", err)
			default:
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changed:
				if !ok {
					return
				}
			}
		}
	}()
	return out
}
