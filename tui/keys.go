package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pick   key.Binding
	Start  key.Binding
	Stop   key.Binding
	Quit   key.Binding
	UseDir key.Binding
	Cancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Pick:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "choose folder")),
		Start:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "start")),
		Stop:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "stop")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		UseDir: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "use this folder")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// formKeys and pickerKeys select the bindings shown in each mode.
type formKeys struct{ keyMap }

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Start, k.Stop, k.Quit}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type pickerKeys struct{ keyMap }

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.UseDir, k.Cancel, k.Quit}
}

func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
