package tui

import tea "github.com/charmbracelet/bubbletea"

// ScreenStack is the navigation stack: Home at the bottom, then whatever the
// user opened from it (details, entry, edit). It drives the Lifecycle of the
// screens it holds, so only the top screen keeps its state subscribed.
type ScreenStack struct {
	items []Screen
}

// Push hides the current top, if any, and shows s.
func (s *ScreenStack) Push(screen Screen) tea.Cmd {
	if screen == nil {
		return nil
	}
	if lc, ok := s.Top().(Lifecycle); ok {
		lc.Hide()
	}
	s.items = append(s.items, screen)
	return show(screen)
}

// Pop closes the top screen and shows the one below. The root stays put.
func (s *ScreenStack) Pop() tea.Cmd {
	if len(s.items) <= 1 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	if lc, ok := last.(Lifecycle); ok {
		lc.Close()
	}
	return show(s.Top())
}

// Replace swaps the top screen for the value its Update returned.
func (s *ScreenStack) Replace(screen Screen) {
	if screen == nil || len(s.items) == 0 {
		return
	}
	s.items[len(s.items)-1] = screen
}

// CloseAll closes every screen, top first, and empties the stack.
func (s *ScreenStack) CloseAll() {
	for i := len(s.items) - 1; i >= 0; i-- {
		if lc, ok := s.items[i].(Lifecycle); ok {
			lc.Close()
		}
	}
	s.items = nil
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s ScreenStack) Len() int {
	return len(s.items)
}

// Titles lists screen titles from the bottom of the stack up, for the
// breadcrumb header.
func (s ScreenStack) Titles() []string {
	out := make([]string, 0, len(s.items))
	for _, sc := range s.items {
		out = append(out, sc.Title())
	}
	return out
}

func show(s Screen) tea.Cmd {
	if lc, ok := s.(Lifecycle); ok {
		return lc.Show()
	}
	return nil
}
