package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tap     key.Binding
	Undo    key.Binding
	Reset   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Journal key.Binding
	Quit    key.Binding
	Help    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Undo, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Undo, k.Reset},
		{k.Next, k.Prev, k.Journal, k.Quit, k.Help},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tap: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "tap"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "end session"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next counter"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "prev counter"),
		),
		Journal: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "journal"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
