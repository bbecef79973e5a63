package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Open    key.Binding
	Close   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Shuffle key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Shuffle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle now")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

// mosaicKeys is shown while the lightbox is closed.
type mosaicKeys struct{ keyMap }

func (k mosaicKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Shuffle, k.Help, k.Quit}
}

func (k mosaicKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Shuffle},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// lightboxKeys is shown while the lightbox is open.
type lightboxKeys struct{ keyMap }

func (k lightboxKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Close, k.Quit}
}

func (k lightboxKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Close, k.Quit}}
}
