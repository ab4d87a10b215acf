package tui

import tea "github.com/charmbracelet/bubbletea"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		if msg.IsErr {
			m.status = msg.Text
			m.statusErr = true
		} else {
			m.SetStatus(msg.Text)
		}
		return m, nil
	case PushScreenMsg:
		return m, m.screens.Push(msg.Screen)
	case PopScreenMsg:
		return m, m.screens.Pop()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || m.keys.IsAction(msg, ActionQuit, m.ActiveScope()) {
			m.quitting = true
			m.screens.CloseAll()
			return m, tea.Quit
		}
	}

	top := m.screens.Top()
	if top == nil {
		return m, nil
	}
	next, cmd, pop := top.Update(msg)
	if pop {
		return m, tea.Batch(cmd, m.screens.Pop())
	}
	m.screens.Replace(next)
	return m, cmd
}
