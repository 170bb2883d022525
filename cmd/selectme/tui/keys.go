package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the form reacts to.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	ListUp       key.Binding // only when there is no search field
	ListDown     key.Binding
	Toggle       key.Binding
	Enter        key.Binding
	Dismiss      key.Binding
	NextWidget   key.Binding
	PrevWidget   key.Binding
	SelectAll    key.Binding
	UnselectAll  key.Binding
	ShowSelected key.Binding
	Submit       key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		ListUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "previous"),
		),
		ListDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "next"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/close"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		NextWidget: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevWidget: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("alt+a"),
			key.WithHelp("alt+a", "select all"),
		),
		UnselectAll: key.NewBinding(
			key.WithKeys("alt+n"),
			key.WithHelp("alt+n", "unselect all"),
		),
		ShowSelected: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "show selected"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// statusHints are the bindings advertised in the status bar.
func (k keyMap) statusHints(open bool) []key.Binding {
	if open {
		return []key.Binding{k.Toggle, k.Dismiss, k.Submit}
	}
	return []key.Binding{k.Enter, k.NextWidget, k.Submit}
}
