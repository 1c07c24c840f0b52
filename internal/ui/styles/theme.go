package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#A78BFA")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#3B82F6")
	TextDim   = lipgloss.Color("#9CA3AF")
)

// Theme holds the styles used for console output. Styles are bound to the
// writer they render for, so output to a file or pipe stays plain text.
type Theme struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Category lipgloss.Style
	Target   lipgloss.Style
	Size     lipgloss.Style
	Dim      lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
}

// New returns a Theme rendering for w
func New(w io.Writer) *Theme {
	r := lipgloss.NewRenderer(w)

	return &Theme{
		Title:    r.NewStyle().Bold(true).Foreground(Primary),
		Heading:  r.NewStyle().Bold(true).Foreground(Secondary),
		Category: r.NewStyle().Foreground(Info),
		Target:   r.NewStyle().Foreground(TextDim),
		Size:     r.NewStyle().Foreground(Warning),
		Dim:      r.NewStyle().Foreground(TextDim).Italic(true),
		Success:  r.NewStyle().Foreground(Success).Bold(true),
		Warning:  r.NewStyle().Foreground(Warning).Bold(true),
		Error:    r.NewStyle().Foreground(Danger).Bold(true),
	}
}
