package renderer

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used to draw a keyboard.
type Theme struct {
	Key      lipgloss.Style
	Conflict lipgloss.Style
	Unbound  lipgloss.Style
	Label    lipgloss.Style
	Binding  lipgloss.Style
	Header   lipgloss.Style
	Grid     lipgloss.Style
	Title    lipgloss.Style
}

// DefaultTheme builds the default theme on re so that colors follow the
// output's capabilities.
func DefaultTheme(re *lipgloss.Renderer) Theme {
	box := re.NewStyle().Border(lipgloss.NormalBorder())
	return Theme{
		Key: box.BorderForeground(lipgloss.Color("#7B61FF")),
		Conflict: box.
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Foreground(lipgloss.Color("#FF5F5F")),
		Unbound: box.
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("240")),
		Label:   re.NewStyle().Bold(true),
		Binding: re.NewStyle().Foreground(lipgloss.Color("#73F59F")),
		Header:  re.NewStyle().Bold(true).Padding(0, 1),
		Grid:    re.NewStyle().Foreground(lipgloss.Color("240")),
		Title: re.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF")).
			MarginBottom(1),
	}
}
