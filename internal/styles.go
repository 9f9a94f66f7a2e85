package internal

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles used to render watcher frames.
type Styles struct {
	Header    lipgloss.Style
	Timestamp lipgloss.Style
	Count     lipgloss.Style
	LogHeader lipgloss.Style
}

// DefaultStyles returns the styles for the standard terminal frame.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Count:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		LogHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
	}
}
