package viewmodel

import (
	"context"
	"sync"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/inventory"
	"github.com/jask/inventory/internal/state"
)

// ItemEditViewModel loads an item once into a draft and saves edits back.
type ItemEditViewModel struct {
	cancel context.CancelFunc
	repo   inventory.ItemsRepository
	itemID int64
	loaded chan struct{}

	mu    sync.Mutex
	state ItemUiState
	dirty bool
}

func NewItemEditViewModel(parent context.Context, repo inventory.ItemsRepository, itemID int64) *ItemEditViewModel {
	ctx, cancel := context.WithCancel(parent)
	vm := &ItemEditViewModel{
		cancel: cancel,
		repo:   repo,
		itemID: itemID,
		loaded: make(chan struct{}),
		state:  ItemUiState{ItemDetails: ItemDetails{ID: itemID}},
	}
	go vm.load(ctx)
	return vm
}

func (vm *ItemEditViewModel) load(ctx context.Context) {
	defer close(vm.loaded)
	streamCtx, stop := context.WithCancel(ctx)
	defer stop()
	it, ok := state.First(streamCtx, vm.repo.StreamOne(streamCtx, vm.itemID), state.NotNil[repository.Item])
	if !ok {
		return
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if !vm.dirty {
		vm.state = UiStateFromItem(*it)
	}
}

// Loaded is closed once the item has been read, or the holder closed.
func (vm *ItemEditViewModel) Loaded() <-chan struct{} { return vm.loaded }

func (vm *ItemEditViewModel) ItemID() int64 { return vm.itemID }

func (vm *ItemEditViewModel) UiState() ItemUiState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// UpdateUiState replaces the draft and recomputes its validity. The id
// always stays the one being edited.
func (vm *ItemEditViewModel) UpdateUiState(d ItemDetails) {
	d.ID = vm.itemID
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.dirty = true
	vm.state = ItemUiState{ItemDetails: d, IsEntryValid: ValidateInput(d)}
}

// SaveItem writes the draft back. An invalid draft is not saved and is not
// an error.
func (vm *ItemEditViewModel) SaveItem(ctx context.Context) (saved bool, err error) {
	current := vm.UiState()
	if !ValidateInput(current.ItemDetails) {
		return false, nil
	}
	if err := vm.repo.UpdateItem(ctx, current.ItemDetails.ToItem()); err != nil {
		return false, err
	}
	return true, nil
}

// Close stops a pending load.
func (vm *ItemEditViewModel) Close() { vm.cancel() }
