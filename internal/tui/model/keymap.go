package model

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all the key bindings of the dashboard.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	Namespace key.Binding
	Version   key.Binding
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding

	Search     key.Binding
	Filter     key.Binding
	NextInput  key.Binding
	Delete     key.Binding
	Tailing    key.Binding
	ErrorLevel key.Binding
	TimeRange  key.Binding
	Expand     key.Binding
	Wrap       key.Binding
	CopyLogs   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Namespace: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select namespace"),
		),
		Version: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select version"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "gcloud logs"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "appsignal"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "databases"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search logs"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter logs"),
		),
		NextInput: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "include/exclude"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
		),
		Tailing: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle tailing"),
		),
		ErrorLevel: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "errors and above"),
		),
		TimeRange: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "time range"),
		),
		Expand: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "expand"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "line wrap"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy logs"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Namespace, k.Version, k.Tab1, k.Tab2, k.Tab3, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back},
		{k.Namespace, k.Version, k.Tab1, k.Tab2, k.Tab3},
		{k.Search, k.Filter, k.NextInput, k.Tailing, k.ErrorLevel, k.TimeRange},
		{k.Expand, k.Wrap, k.CopyLogs, k.Help, k.Quit},
	}
}
