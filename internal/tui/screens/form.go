package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventory/internal/tui"
	"github.com/jask/inventory/internal/viewmodel"
)

// draftHolder is the part of the entry and edit holders the form drives.
type draftHolder interface {
	UiState() viewmodel.ItemUiState
	UpdateUiState(d viewmodel.ItemDetails)
	SaveItem(ctx context.Context) (bool, error)
	Close()
}

type formLoadedMsg struct {
	form *FormScreen
}

const (
	fieldName = iota
	fieldPrice
	fieldQuantity
)

// FormScreen edits an item draft: name, price and quantity.
type FormScreen struct {
	p      *Provider
	title  string
	holder draftHolder
	loaded <-chan struct{}
	inputs []textinput.Model
	focus  int
	ready  bool
}

var _ tui.Lifecycle = (*FormScreen)(nil)

func newFormScreen(p *Provider, title string, holder draftHolder, loaded <-chan struct{}) *FormScreen {
	labels := []string{"Name", "Price", "Quantity"}
	inputs := make([]textinput.Model, 0, len(labels))
	for i, l := range labels {
		inp := textinput.New()
		inp.Prompt = l + ": "
		inp.CharLimit = 64
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	inputs[fieldPrice].Placeholder = "0.00"
	inputs[fieldQuantity].Placeholder = "0"
	return &FormScreen{p: p, title: title, holder: holder, loaded: loaded, inputs: inputs, ready: loaded == nil}
}

func (s *FormScreen) Title() string { return s.title }
func (s *FormScreen) Scope() string { return tui.ScopeForm }

// Show waits for the edit holder to load its item into the draft.
func (s *FormScreen) Show() tea.Cmd {
	if s.ready {
		return textinput.Blink
	}
	loaded := s.loaded
	return func() tea.Msg {
		<-loaded
		return formLoadedMsg{form: s}
	}
}

func (s *FormScreen) Hide()  {}
func (s *FormScreen) Close() { s.holder.Close() }

// Ready reports whether the draft has been filled in and can be edited.
func (s *FormScreen) Ready() bool { return s.ready }

// Draft returns the holder's current state.
func (s *FormScreen) Draft() viewmodel.ItemUiState { return s.holder.UiState() }

func (s *FormScreen) Update(msg tea.Msg) (tui.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case formLoadedMsg:
		if msg.form != s || s.ready {
			return s, nil, false
		}
		s.ready = true
		d := s.holder.UiState().ItemDetails
		s.inputs[fieldName].SetValue(d.Name)
		s.inputs[fieldPrice].SetValue(d.Price)
		s.inputs[fieldQuantity].SetValue(d.Quantity)
		return s, textinput.Blink, false
	case tea.KeyMsg:
		keys, scope := s.p.Keys, s.Scope()
		switch {
		case keys.IsAction(msg, tui.ActionBack, scope):
			return s, nil, true
		case keys.IsAction(msg, tui.ActionNextField, scope):
			s.move(1)
			return s, nil, false
		case keys.IsAction(msg, tui.ActionPrevField, scope):
			s.move(-1)
			return s, nil, false
		case keys.IsAction(msg, tui.ActionSave, scope):
			if !s.ready || !s.holder.UiState().IsEntryValid {
				return s, nil, false
			}
			return s, s.saveCmd(), true
		}
		if !s.ready {
			return s, nil, false
		}
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		s.holder.UpdateUiState(viewmodel.ItemDetails{
			Name:     s.inputs[fieldName].Value(),
			Price:    s.inputs[fieldPrice].Value(),
			Quantity: s.inputs[fieldQuantity].Value(),
		})
	}
	return s, cmd, false
}

func (s *FormScreen) move(dir int) {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + dir + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *FormScreen) saveCmd() tea.Cmd {
	holder, ctx := s.holder, s.p.Ctx
	name := strings.TrimSpace(s.inputs[fieldName].Value())
	return func() tea.Msg {
		saved, err := holder.SaveItem(ctx)
		switch {
		case err != nil:
			return tui.StatusMsg{Text: err.Error(), IsErr: true}
		case !saved:
			return tui.StatusMsg{}
		}
		return tui.StatusMsg{Text: "Saved " + name}
	}
}

func (s *FormScreen) View(width, height int) string {
	if !s.ready {
		return tui.MutedStyle.Render("Loading…")
	}
	lines := []string{tui.TitleStyle.Render(s.title), ""}
	for _, in := range s.inputs {
		lines = append(lines, in.View())
	}
	if !s.holder.UiState().IsEntryValid {
		lines = append(lines, "", tui.MutedStyle.Render("Name, price and quantity are required."))
	}
	return strings.Join(lines, "\n")
}
