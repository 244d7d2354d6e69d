package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Submit   key.Binding
	Quality  key.Binding
	Format   key.Binding
	Up       key.Binding
	Down     key.Binding
	Cancel   key.Binding
	Fetch    key.Binding
	Refresh  key.Binding
	Delete   key.Binding
	Search   key.Binding
	Filter   key.Binding
	Edit     key.Binding
	Save     key.Binding
	Reset    key.Binding
	Dismiss  key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	NextPage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev page")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "download")),
	Quality:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "quality")),
	Format:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "format")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Cancel:   key.NewBinding(key.WithKeys("c", "x"), key.WithHelp("c", "cancel task")),
	Fetch:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "save file")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "date filter")),
	Edit:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "edit")),
	Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
	Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
}
