package tui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Lifecycle is implemented by screens that hold subscriptions. Show runs when
// the screen becomes the top of the stack, Hide when another screen covers
// it, and Close when it is popped for good.
type Lifecycle interface {
	Show() tea.Cmd
	Hide()
	Close()
}

type Model struct {
	width     int
	height    int
	screens   ScreenStack
	keys      *KeyRegistry
	status    string
	statusErr bool
	quitting  bool
}

func NewModel(root Screen, keys *KeyRegistry) Model {
	m := Model{
		keys:   keys,
		status: "Ready",
		width:  100,
		height: 32,
	}
	// the root is shown by Init, not here
	if root != nil {
		m.screens.items = []Screen{root}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return show(m.screens.Top())
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	log.Printf("tui: %v", err)
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	return "app"
}

// Status returns the status line and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Depth reports how many screens are stacked.
func (m Model) Depth() int { return m.screens.Len() }

// Top returns the visible screen.
func (m Model) Top() Screen { return m.screens.Top() }
