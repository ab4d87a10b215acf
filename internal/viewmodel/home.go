package viewmodel

import (
	"context"
	"time"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/inventory"
	"github.com/jask/inventory/internal/state"
)

// HomeUiState is the state of the list screen.
type HomeUiState struct {
	ItemList []repository.Item
}

// HomeViewModel exposes every item in the store.
type HomeViewModel struct {
	cancel  context.CancelFunc
	UiState *state.Flow[HomeUiState]
}

func NewHomeViewModel(parent context.Context, repo inventory.ItemsRepository, stopTimeout time.Duration) *HomeViewModel {
	ctx, cancel := context.WithCancel(parent)
	upstream := func(ctx context.Context) <-chan HomeUiState {
		return state.Map(ctx, repo.StreamAll(ctx), func(items []repository.Item) HomeUiState {
			return HomeUiState{ItemList: items}
		})
	}
	return &HomeViewModel{
		cancel:  cancel,
		UiState: state.StateIn(ctx, upstream, state.WhileSubscribed(stopTimeout), HomeUiState{}),
	}
}

// Close tears down the holder and every subscription to it.
func (vm *HomeViewModel) Close() { vm.cancel() }
