package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	OpenNew  key.Binding
	Close    key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding
	NextPane key.Binding
	Move     key.Binding
	Split    key.Binding
	Quad     key.Binding
	Maximize key.Binding
	Sidebar  key.Binding
	Shrink   key.Binding
	Grow     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		OpenNew:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "open new tab")),
		Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		PrevTab:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		NextTab:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to other side")),
		Split:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle split")),
		Quad:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "toggle quad")),
		Maximize: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "maximize")),
		Sidebar:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "sidebar")),
		Shrink:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "shrink")),
		Grow:     key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "grow")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close, k.Split, k.Quad, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.OpenNew},
		{k.PrevTab, k.NextTab, k.NextPane, k.Close},
		{k.Move, k.Split, k.Quad, k.Maximize},
		{k.Sidebar, k.Shrink, k.Grow, k.Help, k.Quit},
	}
}
