package screens

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jask/inventory/internal/inventory"
	"github.com/jask/inventory/internal/prefs"
	"github.com/jask/inventory/internal/tui"
	"github.com/jask/inventory/internal/viewmodel"
)

// Provider builds screens together with their state holders.
type Provider struct {
	Ctx         context.Context
	Repo        inventory.ItemsRepository
	Keys        *tui.KeyRegistry
	Currency    string
	StopTimeout time.Duration
	// Prefs remembers the Home filter between runs; nil disables it.
	Prefs *prefs.Store
}

func (p *Provider) Home() *HomeScreen {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "name"
	if ui, err := p.Prefs.LoadUI(); err != nil {
		log.Printf("screens: load prefs: %v", err)
	} else {
		filter.SetValue(ui.HomeFilter)
	}
	return &HomeScreen{
		p:      p,
		vm:     viewmodel.NewHomeViewModel(p.Ctx, p.Repo, p.StopTimeout),
		filter: filter,
	}
}

func (p *Provider) Details(id int64) *DetailsScreen {
	return &DetailsScreen{
		p:     p,
		vm:    viewmodel.NewItemDetailsViewModel(p.Ctx, p.Repo, id, p.StopTimeout),
		state: viewmodel.DefaultItemDetailsUiState(),
	}
}

func (p *Provider) Entry() *FormScreen {
	return newFormScreen(p, "Add item", viewmodel.NewItemEntryViewModel(p.Repo), nil)
}

func (p *Provider) Edit(id int64) *FormScreen {
	vm := viewmodel.NewItemEditViewModel(p.Ctx, p.Repo, id)
	return newFormScreen(p, "Edit item", vm, vm.Loaded())
}
