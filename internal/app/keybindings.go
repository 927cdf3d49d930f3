package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for devnews.
type KeyMap struct {
	// Navigation
	Down         key.Binding
	Up           key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Stories
	Open       key.Binding
	Comments   key.Binding
	Bookmark   key.Binding
	LoadMore   key.Binding
	Refresh    key.Binding
	Feed       key.Binding
	Bookmarks  key.Binding
	History    key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Back       key.Binding
	CycleTheme key.Binding

	// Reader
	PageBack    key.Binding
	PageForward key.Binding

	// Modes
	CommandMode key.Binding
	SearchMode  key.Binding
	Leader      key.Binding

	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "next story"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "previous story"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("Enter/o", "read story"),
		),
		Comments: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "read comments"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle bookmark"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Feed: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "switch feed"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "bookmarks"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("Tab/l", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("S-Tab/h", "previous tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("Esc", "close reader / clear filter"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next theme"),
		),
		PageBack: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "previous page (reader)"),
		),
		PageForward: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "next page (reader)"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		SearchMode: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter stories"),
		),
		Leader: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "leader palette"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// helpSections groups bindings for the help page.
func (k KeyMap) helpSections() []helpSection {
	return []helpSection{
		{"Navigation", []key.Binding{k.Down, k.Up, k.HalfPageDown, k.HalfPageUp, k.GotoTop, k.GotoBottom}},
		{"Stories", []key.Binding{k.Open, k.Comments, k.Bookmark, k.LoadMore, k.Refresh, k.Back}},
		{"Reader", []key.Binding{k.PageBack, k.PageForward}},
		{"Views", []key.Binding{k.Feed, k.Bookmarks, k.History, k.NextTab, k.PrevTab}},
		{"Modes", []key.Binding{k.SearchMode, k.CommandMode, k.Leader, k.CycleTheme, k.Help, k.Quit}},
	}
}

type helpSection struct {
	name     string
	bindings []key.Binding
}
