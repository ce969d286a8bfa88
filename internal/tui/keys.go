package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the task list TUI.
type KeyMap struct {
	// List navigation.
	Up   key.Binding
	Down key.Binding

	// List actions.
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Form (add/edit) keys.
	Submit        key.Binding
	Cancel        key.Binding
	CyclePriority key.Binding

	// Delete confirmation.
	Yes key.Binding
	No  key.Binding

	Quit      key.Binding
	ForceQuit key.Binding // Quits from any mode.
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
//
//nolint:gochecknoglobals // read-only binding table
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	CyclePriority: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "priority"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "delete"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "keep"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
