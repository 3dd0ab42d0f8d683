package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Login   key.Binding
	Add     key.Binding
	Up      key.Binding
	Down    key.Binding
	Remove  key.Binding
	Dismiss key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Login:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
		Add:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "add order")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Remove:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove order")),
		Dismiss: key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "dismiss")),
		Logout:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "log out")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// forZone enables only what does something where the focus is.
func (k keyMap) forZone(z zone, loggedIn bool) keyMap {
	k.Login.SetEnabled(!loggedIn && z != zoneErrors)
	k.Add.SetEnabled(loggedIn)
	k.Logout.SetEnabled(loggedIn)
	list := z == zoneOrders || z == zoneErrors
	k.Up.SetEnabled(list)
	k.Down.SetEnabled(list)
	k.Remove.SetEnabled(z == zoneOrders)
	k.Dismiss.SetEnabled(z == zoneErrors)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Login, k.Add, k.Up, k.Down, k.Remove, k.Dismiss, k.Logout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Login, k.Add, k.Remove, k.Dismiss},
		{k.Up, k.Down},
		{k.Logout, k.Quit},
	}
}
