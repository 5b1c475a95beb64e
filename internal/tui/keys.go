package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mode    key.Binding
	Reverse key.Binding
	Date    key.Binding
	Count   key.Binding
	App     key.Binding
	Today   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Help    key.Binding
	Close   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "day/app mode"),
	),
	Reverse: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reverse order"),
	),
	Date: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "set date"),
	),
	Count: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "set number of days"),
	),
	App: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "set app"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "back to today"),
	),
	Next: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "next day"),
	),
	Prev: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "previous day"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "scroll left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "scroll right"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	// Close dismisses the help overlay.
	Close: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q/esc", "close help"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Date, k.Count, k.Left, k.Right, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Reverse, k.Date, k.Count, k.App},
		{k.Today, k.Next, k.Prev},
		{k.Left, k.Right},
		{k.Confirm, k.Cancel, k.Help, k.Quit},
	}
}
