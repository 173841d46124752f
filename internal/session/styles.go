package session

import "github.com/charmbracelet/lipgloss"

// Styles groups the rendering styles used by the session output. One
// value is built at construction; nothing styles ad hoc.
type Styles struct {
	Heading lipgloss.Style
	Tag     lipgloss.Style
	Choice  lipgloss.Style
	Warn    lipgloss.Style
}

// DefaultStyles returns the stock color set.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true),
		Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Choice:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}
