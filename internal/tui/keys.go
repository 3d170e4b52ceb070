package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Grab     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Swap     key.Binding
	Append   key.Binding
	Prepend  key.Binding
	Insert   key.Binding
	Remove   key.Binding
	Edit     key.Binding
	Reset    key.Binding
	Submit   key.Binding
	Preview  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Drop     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Grab:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Swap:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap with next")),
		Append:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add at end")),
		Prepend:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add at top")),
		Insert:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert here")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "replace with defaults")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Drop:     key.NewBinding(key.WithKeys(" ", "enter", "esc"), key.WithHelp("space/enter/esc", "drop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Edit, k.Append, k.Remove, k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Grab, k.MoveUp, k.MoveDown, k.Swap},
		{k.Append, k.Prepend, k.Insert, k.Remove, k.Reset},
		{k.Edit, k.Submit, k.Preview, k.Help, k.Quit},
	}
}

// dragKeyMap is shown while a row is grabbed; cursor and move keys both drag.
type dragKeyMap struct{ k keyMap }

func relabel(b key.Binding, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(b.Help().Key, desc))
}

func (d dragKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		relabel(d.k.Up, "drag up"),
		relabel(d.k.Down, "drag down"),
		d.k.Drop,
	}
}

func (d dragKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }
