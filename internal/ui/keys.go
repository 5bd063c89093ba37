package ui

import "github.com/charmbracelet/bubbles/key"

// dashboardKeys are the dashboard actions. Single-letter keys only fire
// while the editor is not taking input; ctrl variants always work.
type dashboardKeys struct {
	Save     key.Binding
	Edit     key.Binding
	Cancel   key.Binding
	Delete   key.Binding
	Safe     key.Binding
	Remind   key.Binding
	External key.Binding
	Focus    key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Calendar key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Edit:     key.NewBinding(key.WithKeys("e", "ctrl+e"), key.WithHelp("e", "edit")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:   key.NewBinding(key.WithKeys("d", "ctrl+d"), key.WithHelp("d", "clear")),
		Safe:     key.NewBinding(key.WithKeys("s", "ctrl+t"), key.WithHelp("s/^t", "safe mode")),
		Remind:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "schedule cues")),
		External: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "$EDITOR")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		ScrollUp: key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "scroll up")),
		ScrollDn: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "scroll down")),
		Calendar: key.NewBinding(key.WithKeys("left", "right", "up", "down", "[", "]", "t"), key.WithHelp("←↑↓→ [ ] t", "day/week/month/today")),
		Help:     key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Edit, k.Safe, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Calendar, k.Focus, k.ScrollUp, k.ScrollDn},
		{k.Save, k.Edit, k.Cancel, k.Delete, k.External},
		{k.Safe, k.Remind, k.Help, k.Quit},
	}
}
