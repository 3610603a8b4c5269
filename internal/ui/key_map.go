package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	toggle   key.Binding
	auto     key.Binding
	remove   key.Binding
	open     key.Binding
	save     key.Binding
	sort     key.Binding
	play     key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	grab     key.Binding
	apply    key.Binding
	back     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		auto:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-select")),
		remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		sort:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sort")),
		play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		moveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		moveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		grab:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "grab/drop")),
		apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.auto, k.remove, k.open, k.save, k.sort, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle, k.auto},
		{k.remove, k.open, k.save, k.play},
		{k.sort, k.moveUp, k.moveDown, k.grab},
		{k.apply, k.back, k.quit},
	}
}

func (k keyMap) sortHelp() []key.Binding {
	return []key.Binding{k.moveUp, k.moveDown, k.grab, k.apply, k.back}
}

func (k keyMap) promptHelp() []key.Binding {
	confirm := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm"))
	return []key.Binding{confirm, k.back}
}

// documentKeys are the edit-view bindings that read or change the document.
func (k keyMap) documentKeys() []key.Binding {
	return []key.Binding{k.toggle, k.auto, k.remove, k.open, k.save, k.sort, k.play, k.back}
}
