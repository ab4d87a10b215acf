package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventory/internal/tui"
	"github.com/jask/inventory/internal/viewmodel"
)

// DetailsScreen shows one item and lets the user sell, edit or delete it.
type DetailsScreen struct {
	p          *Provider
	vm         *viewmodel.ItemDetailsViewModel
	sub        tui.Subscription[viewmodel.ItemDetailsUiState]
	state      viewmodel.ItemDetailsUiState
	confirming bool
}

var _ tui.Lifecycle = (*DetailsScreen)(nil)

func (s *DetailsScreen) Title() string {
	if name := s.state.ItemDetails.Name; name != "" {
		return name
	}
	return "Item"
}

func (s *DetailsScreen) Scope() string {
	if s.confirming {
		return tui.ScopeConfirm
	}
	return tui.ScopeDetails
}

func (s *DetailsScreen) Show() tea.Cmd { return s.sub.Start(s.vm.UiState) }
func (s *DetailsScreen) Hide()         { s.sub.Stop() }
func (s *DetailsScreen) Close() {
	s.sub.Stop()
	s.vm.Close()
}

// State returns the last state received.
func (s *DetailsScreen) State() viewmodel.ItemDetailsUiState { return s.state }

func (s *DetailsScreen) Update(msg tea.Msg) (tui.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tui.FlowMsg[viewmodel.ItemDetailsUiState]:
		ok, next := s.sub.Next(msg)
		if ok {
			s.state = msg.Value
		}
		return s, next, false
	case tea.KeyMsg:
		keys, scope := s.p.Keys, s.Scope()
		if s.confirming {
			switch {
			case keys.IsAction(msg, tui.ActionConfirm, scope):
				s.confirming = false
				return s, s.deleteCmd(), true
			case keys.IsAction(msg, tui.ActionCancel, scope):
				s.confirming = false
			}
			return s, nil, false
		}
		switch {
		case keys.IsAction(msg, tui.ActionBack, scope):
			return s, nil, true
		case keys.IsAction(msg, tui.ActionEdit, scope):
			return s, tui.PushCmd(s.p.Edit(s.vm.ItemID())), false
		case keys.IsAction(msg, tui.ActionSell, scope):
			if s.state.OutOfStock {
				return s, tui.StatusCmd("Out of stock"), false
			}
			return s, s.sellCmd(), false
		case keys.IsAction(msg, tui.ActionDelete, scope):
			s.confirming = true
		}
	}
	return s, nil, false
}

func (s *DetailsScreen) sellCmd() tea.Cmd {
	vm, ctx, name := s.vm, s.p.Ctx, s.state.ItemDetails.Name
	return func() tea.Msg {
		if err := vm.ReduceQuantityByOne(ctx); err != nil {
			return tui.StatusMsg{Text: err.Error(), IsErr: true}
		}
		return tui.StatusMsg{Text: "Sold one " + name}
	}
}

func (s *DetailsScreen) deleteCmd() tea.Cmd {
	vm, ctx, name := s.vm, s.p.Ctx, s.state.ItemDetails.Name
	return func() tea.Msg {
		if err := vm.DeleteItem(ctx); err != nil {
			return tui.StatusMsg{Text: err.Error(), IsErr: true}
		}
		return tui.StatusMsg{Text: "Deleted " + name}
	}
}

func (s *DetailsScreen) View(width, height int) string {
	d := s.state.ItemDetails
	if d.Name == "" {
		return tui.MutedStyle.Render("Loading…")
	}
	price := viewmodel.FormatPrice(d.ToItem().Price, s.p.Currency)
	stock := d.Quantity
	if s.state.OutOfStock {
		stock = tui.WarnStyle.Render(stock + "  out of stock")
	}
	body := strings.Join([]string{
		tui.TitleStyle.Render(d.Name),
		"",
		fmt.Sprintf("%-10s %s", "Price", price),
		fmt.Sprintf("%-10s %s", "In stock", stock),
	}, "\n")
	lines := []string{tui.BoxStyle.Width(min(width-2, 50)).Render(body)}
	if s.confirming {
		yes := s.p.Keys.KeysFor(tui.ActionConfirm, tui.ScopeConfirm)
		no := s.p.Keys.KeysFor(tui.ActionCancel, tui.ScopeConfirm)
		prompt := fmt.Sprintf("Delete %s? (%s/%s)", d.Name, strings.Join(yes, ","), strings.Join(no, ","))
		lines = append(lines, "", tui.ErrorStyle.Render(prompt))
	}
	return strings.Join(lines, "\n")
}
