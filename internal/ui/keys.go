package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Tab       key.Binding
	NextFile  key.Binding
	Clear     key.Binding
	Highlight key.Binding
	Refresh   key.Binding
	Play      key.Binding
	StepNext  key.Binding
	StepPrev  key.Binding
	Faster    key.Binding
	Slower    key.Binding
	OpenLink  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/select")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		NextFile:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next source file")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear focus")),
		Highlight: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "toggle highlights")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh runs")),
		Play:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		StepNext:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next call")),
		StepPrev:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous call")),
		Faster:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "faster")),
		Slower:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "slower")),
		OpenLink:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "trace link")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Play, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Tab, k.NextFile},
		{k.Play, k.StepNext, k.StepPrev, k.Faster, k.Slower},
		{k.Clear, k.Highlight, k.Refresh, k.OpenLink, k.Quit},
	}
}
