package screens

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/prefs"
	"github.com/jask/inventory/internal/service"
	"github.com/jask/inventory/internal/tui"
	"github.com/jask/inventory/internal/viewmodel"
)

// HomeScreen lists every item and filters them by name.
type HomeScreen struct {
	p      *Provider
	vm     *viewmodel.HomeViewModel
	sub    tui.Subscription[viewmodel.HomeUiState]
	items  []repository.Item
	cursor int

	filtering bool
	filter    textinput.Model
}

var _ tui.Lifecycle = (*HomeScreen)(nil)

func (s *HomeScreen) Title() string { return "Items" }

func (s *HomeScreen) Scope() string {
	if s.filtering {
		return tui.ScopeHomeFilter
	}
	return tui.ScopeHome
}

func (s *HomeScreen) Show() tea.Cmd { return s.sub.Start(s.vm.UiState) }
func (s *HomeScreen) Hide()         { s.sub.Stop() }
func (s *HomeScreen) Close() {
	s.sub.Stop()
	s.vm.Close()
}

// Visible returns the items after the filter is applied.
func (s *HomeScreen) Visible() []repository.Item {
	return service.Search(s.items, s.filter.Value())
}

// Selected returns the item under the cursor.
func (s *HomeScreen) Selected() (repository.Item, bool) {
	vis := s.Visible()
	if s.cursor < 0 || s.cursor >= len(vis) {
		return repository.Item{}, false
	}
	return vis[s.cursor], true
}

func (s *HomeScreen) Update(msg tea.Msg) (tui.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tui.FlowMsg[viewmodel.HomeUiState]:
		ok, next := s.sub.Next(msg)
		if ok {
			s.items = msg.Value.ItemList
			s.clampCursor()
		}
		return s, next, false
	case tea.KeyMsg:
		if s.filtering {
			return s.updateFilter(msg)
		}
		keys, scope := s.p.Keys, s.Scope()
		switch {
		case keys.IsAction(msg, tui.ActionDown, scope):
			s.cursor++
			s.clampCursor()
		case keys.IsAction(msg, tui.ActionUp, scope):
			s.cursor--
			s.clampCursor()
		case keys.IsAction(msg, tui.ActionOpen, scope):
			if it, ok := s.Selected(); ok {
				return s, tui.PushCmd(s.p.Details(it.ID)), false
			}
		case keys.IsAction(msg, tui.ActionAdd, scope):
			return s, tui.PushCmd(s.p.Entry()), false
		case keys.IsAction(msg, tui.ActionFilter, scope):
			s.filtering = true
			return s, s.filter.Focus(), false
		}
	}
	return s, nil, false
}

func (s *HomeScreen) updateFilter(msg tea.KeyMsg) (tui.Screen, tea.Cmd, bool) {
	keys, scope := s.p.Keys, s.Scope()
	switch {
	case keys.IsAction(msg, tui.ActionFilterDone, scope):
		s.filtering = false
		s.filter.Blur()
		s.saveFilter()
		return s, nil, false
	case keys.IsAction(msg, tui.ActionFilterClear, scope):
		s.filtering = false
		s.filter.Blur()
		s.filter.SetValue("")
		s.clampCursor()
		s.saveFilter()
		return s, nil, false
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.cursor = 0
	return s, cmd, false
}

func (s *HomeScreen) saveFilter() {
	if err := s.p.Prefs.SaveUI(prefs.UI{HomeFilter: s.filter.Value()}); err != nil {
		log.Printf("screens: save prefs: %v", err)
	}
}

func (s *HomeScreen) clampCursor() {
	n := len(s.Visible())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *HomeScreen) View(width, height int) string {
	lines := []string{}
	if s.filtering || s.filter.Value() != "" {
		lines = append(lines, s.filter.View(), "")
	}
	vis := s.Visible()
	if len(vis) == 0 {
		if len(s.items) == 0 {
			lines = append(lines, tui.MutedStyle.Render("No items. Press a to add one."))
		} else {
			lines = append(lines, tui.MutedStyle.Render("No items match the filter."))
		}
		return strings.Join(lines, "\n")
	}

	nameW := max(8, width-28)
	header := fmt.Sprintf("  %-*s %12s %10s", nameW, "Name", "Price", "In stock")
	lines = append(lines, tui.TitleStyle.Render(header))
	rows := height - len(lines)
	start := 0
	if rows > 0 && s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	for i := start; i < len(vis) && i-start < max(1, rows); i++ {
		it := vis[i]
		row := fmt.Sprintf("  %-*s %12s %10d", nameW, tui.TrimToWidth(it.Name, nameW), viewmodel.FormatPrice(it.Price, s.p.Currency), it.Quantity)
		switch {
		case i == s.cursor:
			row = tui.SelectedStyle.Render(row)
		case it.Quantity <= 0:
			row = tui.WarnStyle.Render(row)
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(row))
	}
	return strings.Join(lines, "\n")
}
