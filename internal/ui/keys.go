package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"sheetgrip/internal/i18n"
)

// keyMap holds the key bindings; help texts come from the active language
type keyMap struct {
	Search    key.Binding
	Stop      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	OpenAny   key.Binding
	Log       key.Binding
	LogAny    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap(tr *i18n.Translator) keyMap {
	return keyMap{
		Search:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", tr.T(i18n.Search))),
		Stop:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", tr.T(i18n.Stop))),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", tr.T(i18n.Focus))),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", tr.T(i18n.Focus))),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", tr.T(i18n.Navigate))),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", tr.T(i18n.Navigate))),
		Open:      key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("o", tr.T(i18n.OpenSelectedFile))),
		OpenAny:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", tr.T(i18n.OpenSelectedFile))),
		Log:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", tr.T(i18n.ShowLog))),
		LogAny:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", tr.T(i18n.ShowLog))),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", tr.T(i18n.Help))),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", tr.T(i18n.Quit))),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", tr.T(i18n.Quit))),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Stop, k.NextField, k.OpenAny, k.LogAny, k.Help, k.ForceQuit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Stop, k.NextField, k.PrevField},
		{k.Up, k.Down, k.Open, k.OpenAny},
		{k.Log, k.LogAny, k.Help, k.Quit, k.ForceQuit},
	}
}
