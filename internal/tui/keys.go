package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Submit    key.Binding
	Back      key.Binding
	Quit      key.Binding
	Random    key.Binding
	Hint      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Restart   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Apply     key.Binding
	Defaults  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Random:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "random")),
		Hint:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "hint")),
		Prev:      key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "previous")),
		Next:      key.NewBinding(key.WithKeys("pgdown", "ctrl+n"), key.WithHelp("pgdn", "next")),
		Restart:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "again")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Apply:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "apply")),
		Defaults:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "defaults")),
	}
}

// helpKeys adapts a binding list to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding {
	return h
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}
