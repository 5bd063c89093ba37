package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	prompt    string
	detail    string
	confirmed bool
	done      bool
	theme     Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.confirmed = true
	case "n", "enter", "esc", "ctrl+c", "q":
		m.confirmed = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	if m.detail != "" {
		b.WriteString(m.theme.HelpStyle().Render(m.detail))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.HeaderStyle().Render(m.prompt))
	b.WriteString(" ")
	b.WriteString(m.theme.DangerStyle().Render("[y/N]"))
	b.WriteString(" ")
	return b.String()
}

// Confirm shows an interactive yes/no prompt with an optional detail line
// above it and reports whether the user answered yes.
func Confirm(prompt, detail string, theme Theme) (bool, error) {
	m := confirmModel{prompt: prompt, detail: detail, theme: theme}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
