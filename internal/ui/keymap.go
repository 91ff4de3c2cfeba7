package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the editor key bindings.
type keyMap struct {
	New     key.Binding
	Open    key.Binding
	Save    key.Binding
	Close   key.Binding
	Quit    key.Binding
	NextDoc key.Binding
	PrevDoc key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		NextDoc: key.NewBinding(
			key.WithKeys("ctrl+right", "ctrl+pgdown"),
			key.WithHelp("ctrl+→", "next doc"),
		),
		PrevDoc: key.NewBinding(
			key.WithKeys("ctrl+left", "ctrl+pgup"),
			key.WithHelp("ctrl+←", "prev doc"),
		),
	}
}
