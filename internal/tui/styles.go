package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	Quick lipgloss.Color
	Rest  lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	Quick: lipgloss.Color("#74B9FF"), // Light blue
	Rest:  lipgloss.Color("#A29BFE"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App      lipgloss.Style
	Header   lipgloss.Style
	Subtitle lipgloss.Style
	Section  lipgloss.Style

	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowDone     lipgloss.Style
	RowRest     lipgloss.Style
	Time        lipgloss.Style
	Badge       lipgloss.Style
	Cursor      lipgloss.Style

	Notice   lipgloss.Style
	ErrorMsg lipgloss.Style
	Input    lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App:      lipgloss.NewStyle().Padding(1, 2),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Subtitle: lipgloss.NewStyle().Foreground(Colors.Muted),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(Colors.Secondary).MarginTop(1),

		Row:         lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		RowSelected: lipgloss.NewStyle().Bold(true).Foreground(Colors.TitleSelected),
		RowDone:     lipgloss.NewStyle().Foreground(Colors.Success),
		RowRest:     lipgloss.NewStyle().Italic(true).Foreground(Colors.Rest),
		Time:        lipgloss.NewStyle().Foreground(Colors.Muted),
		Badge:       lipgloss.NewStyle().Foreground(Colors.Quick),
		Cursor:      lipgloss.NewStyle().Foreground(Colors.Primary),

		Notice:   lipgloss.NewStyle().Foreground(Colors.Success),
		ErrorMsg: lipgloss.NewStyle().Foreground(Colors.Error),
		Input:    lipgloss.NewStyle().Foreground(Colors.Warning),
		Footer:   lipgloss.NewStyle().MarginTop(1),
	}
}
