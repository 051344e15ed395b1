package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders command output. Colors are dropped automatically when the
// writer is not a terminal.
type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	done    lipgloss.Style
	pending lipgloss.Style
	rest    lipgloss.Style
	locked  lipgloss.Style
	accent  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#636E72")),
		done:    r.NewStyle().Foreground(lipgloss.Color("#00B894")),
		pending: r.NewStyle().Foreground(lipgloss.Color("#DFE6E9")),
		rest:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("#A29BFE")),
		locked:  r.NewStyle().Foreground(lipgloss.Color("#FDCB6E")),
		accent:  r.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
	}
}

// check renders a checkbox.
func (s styles) check(done bool) string {
	if done {
		return s.done.Render("[x]")
	}
	return s.pending.Render("[ ]")
}
