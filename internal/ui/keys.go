package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the global key bindings.
type keyMap struct {
	Save      key.Binding
	SignIn    key.Binding
	Open      key.Binding
	SwitchTo  key.Binding
	AddVar    key.Binding
	EditVar   key.Binding
	DeleteVar key.Binding
	Up        key.Binding
	Down      key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save gist"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "sign in"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open gist"),
		),
		SwitchTo: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		AddVar: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add variable"),
		),
		EditVar: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit variable"),
		),
		DeleteVar: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete variable"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
