package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap maps the front-panel controls onto the keyboard.
type KeyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Next      key.Binding
	Previous  key.Binding
	Write     key.Binding
	Audition  key.Binding
	Play      key.Binding
	Continue  key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increment: key.NewBinding(key.WithKeys("right", "l", "up", "k"), key.WithHelp("→/l", "turn +")),
		Decrement: key.NewBinding(key.WithKeys("left", "h", "down", "j"), key.WithHelp("←/h", "turn -")),
		Next:      key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab", "next")),
		Previous:  key.NewBinding(key.WithKeys("shift+tab", "["), key.WithHelp("shift+tab", "previous")),
		Write:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write")),
		Audition:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "audition")),
		Play:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/stop")),
		Continue:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Faster:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "tempo up")),
		Slower:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "tempo down")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Decrement, k.Next, k.Write, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increment, k.Decrement, k.Next, k.Previous},
		{k.Write, k.Audition, k.Save},
		{k.Play, k.Continue, k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}
