package viewmodel

import (
	"context"
	"sync"

	"github.com/jask/inventory/internal/inventory"
)

// ItemEntryViewModel owns the draft of a new item.
type ItemEntryViewModel struct {
	repo inventory.ItemsRepository

	mu    sync.Mutex
	state ItemUiState
}

func NewItemEntryViewModel(repo inventory.ItemsRepository) *ItemEntryViewModel {
	return &ItemEntryViewModel{repo: repo}
}

func (vm *ItemEntryViewModel) UiState() ItemUiState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// UpdateUiState replaces the draft and recomputes its validity.
func (vm *ItemEntryViewModel) UpdateUiState(d ItemDetails) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state = ItemUiState{ItemDetails: d, IsEntryValid: ValidateInput(d)}
}

// SaveItem inserts the draft. An invalid draft is not saved and is not an
// error; saved reports which happened.
func (vm *ItemEntryViewModel) SaveItem(ctx context.Context) (saved bool, err error) {
	current := vm.UiState()
	if !ValidateInput(current.ItemDetails) {
		return false, nil
	}
	it := current.ItemDetails.ToItem()
	it.ID = 0
	if _, err := vm.repo.InsertItem(ctx, it); err != nil {
		return false, err
	}
	return true, nil
}

// Close is a no-op; the entry draft holds no subscriptions.
func (vm *ItemEntryViewModel) Close() {}
