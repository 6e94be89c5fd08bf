package browse

import "github.com/charmbracelet/lipgloss"

// StyleManager encapsulates the browser's TUI styles
type StyleManager struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Path     lipgloss.Style
	Count    lipgloss.Style
	XRef     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Border   lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:    lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		XRef:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	}
}
