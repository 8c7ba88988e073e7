// Package styles renders CLI diagnostics. Program output is never styled.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorScheme defines the palette for diagnostics
type ColorScheme struct {
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultColors returns the default palette
func DefaultColors() ColorScheme {
	return ColorScheme{
		Error:   lipgloss.Color("#FF5555"),
		Warning: lipgloss.Color("#F1FA8C"),
		Success: lipgloss.Color("#50FA7B"),
		Muted:   lipgloss.Color("#6272A4"),
	}
}

// Styles holds one lipgloss style per message kind
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// New returns styles bound to a renderer for w. Colour is dropped when
// noColor is set or the environment asks for it (NO_COLOR, CLICOLOR=0).
func New(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}

	colors := DefaultColors()
	return Styles{
		Error:   r.NewStyle().Foreground(colors.Error),
		Warning: r.NewStyle().Foreground(colors.Warning),
		Success: r.NewStyle().Foreground(colors.Success),
		Muted:   r.NewStyle().Foreground(colors.Muted),
	}
}
