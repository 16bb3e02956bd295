package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the installer.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Home           key.Binding
	End            key.Binding
	PrevCategory   key.Binding
	NextCategory   key.Binding
	ToggleHidden   key.Binding
	ToggleShortcut key.Binding
	Toggle         key.Binding
	SelectAll      key.Binding
	DeselectAll    key.Binding
	Install        key.Binding
	Yes            key.Binding
	No             key.Binding
	Dismiss        key.Binding
	Help           key.Binding
	Quit           key.Binding
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
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev category"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next category"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "show inactive"),
		),
		ToggleShortcut: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "desktop shortcuts"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		DeselectAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "deselect all"),
		),
		Install: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "install"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "no"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "ok"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in short help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.PrevCategory, k.NextCategory, k.ToggleHidden, k.ToggleShortcut, k.Install, k.Help, k.Quit}
}

// FullHelp returns all keybindings for full help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Toggle, k.SelectAll, k.DeselectAll, k.Install},
		{k.PrevCategory, k.NextCategory, k.ToggleHidden, k.ToggleShortcut},
		{k.Help, k.Quit},
	}
}
