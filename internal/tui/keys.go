package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Toggle    key.Binding // Check or uncheck the selected row
	Unlock    key.Binding // Unlock a random goal
	SideQuest key.Binding // Take a random side quest
	Quick     key.Binding // Add a quick task for today

	// View
	Refresh key.Binding
	Help    key.Binding

	// General
	Quit   key.Binding
	Escape key.Binding
	Submit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "check"),
		),
		Unlock: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unlock goal"),
		),
		SideQuest: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "side quest"),
		),
		Quick: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "quick task"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Unlock, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Unlock, k.SideQuest, k.Quick},
		{k.Refresh, k.Help, k.Quit},
	}
}
