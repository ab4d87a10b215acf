package viewmodel

import (
	"context"
	"time"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/inventory"
	"github.com/jask/inventory/internal/state"
)

// ItemDetailsUiState is the state of the details screen. OutOfStock starts
// true so nothing can be sold before the item has loaded.
type ItemDetailsUiState struct {
	OutOfStock  bool
	ItemDetails ItemDetails
}

// DefaultItemDetailsUiState is the value before the first emission.
func DefaultItemDetailsUiState() ItemDetailsUiState {
	return ItemDetailsUiState{OutOfStock: true}
}

// ItemDetailsViewModel shows, sells from, and deletes one item.
type ItemDetailsViewModel struct {
	cancel  context.CancelFunc
	repo    inventory.ItemsRepository
	itemID  int64
	UiState *state.Flow[ItemDetailsUiState]
}

func NewItemDetailsViewModel(parent context.Context, repo inventory.ItemsRepository, itemID int64, stopTimeout time.Duration) *ItemDetailsViewModel {
	ctx, cancel := context.WithCancel(parent)
	upstream := func(ctx context.Context) <-chan ItemDetailsUiState {
		present := state.Filter(ctx, repo.StreamOne(ctx, itemID), state.NotNil[repository.Item])
		return state.Map(ctx, present, func(it *repository.Item) ItemDetailsUiState {
			return ItemDetailsUiState{OutOfStock: it.Quantity <= 0, ItemDetails: DetailsFromItem(*it)}
		})
	}
	return &ItemDetailsViewModel{
		cancel:  cancel,
		repo:    repo,
		itemID:  itemID,
		UiState: state.StateIn(ctx, upstream, state.WhileSubscribed(stopTimeout), DefaultItemDetailsUiState()),
	}
}

func (vm *ItemDetailsViewModel) ItemID() int64 { return vm.itemID }

// ReduceQuantityByOne sells one unit. It does nothing when the item is gone
// or already out of stock.
func (vm *ItemDetailsViewModel) ReduceQuantityByOne(ctx context.Context) error {
	it, err := vm.repo.GetItem(ctx, vm.itemID)
	if err != nil || it == nil || it.Quantity <= 0 {
		return err
	}
	it.Quantity--
	return vm.repo.UpdateItem(ctx, *it)
}

// DeleteItem removes the item from the store.
func (vm *ItemDetailsViewModel) DeleteItem(ctx context.Context) error {
	return vm.repo.DeleteItem(ctx, repository.Item{ID: vm.itemID})
}

// Close tears down the holder and every subscription to it.
func (vm *ItemDetailsViewModel) Close() { vm.cancel() }
