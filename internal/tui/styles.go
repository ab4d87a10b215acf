package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	crumbStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorMuted)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
)

// Styles shared with the screens.
var (
	TitleStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	SelectedStyle = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorAccent).Bold(true)
	WarnStyle     = lipgloss.NewStyle().Foreground(colorWarn)
	ErrorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
)
