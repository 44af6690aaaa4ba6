package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	quit    key.Binding
	newChat key.Binding
	delete  key.Binding
	copy    key.Binding
	explain key.Binding
	filter  key.Binding
	logout  key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	newChat: key.NewBinding(key.WithKeys("ctrl+n")),
	delete:  key.NewBinding(key.WithKeys("ctrl+d")),
	copy:    key.NewBinding(key.WithKeys("c")),
	explain: key.NewBinding(key.WithKeys("ctrl+e", "e")),
	filter:  key.NewBinding(key.WithKeys("/")),
	logout:  key.NewBinding(key.WithKeys("ctrl+l")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n", "esc")),
}
