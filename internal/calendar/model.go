package calendar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/moodctl/internal/analysis"
)

// SelectedMsg is emitted when the cursor lands on a new day.
type SelectedMsg struct {
	Date time.Time
}

// Model is a month calendar with a day cursor. Risks is owned by the parent
// and replaced wholesale when the listing changes.
type Model struct {
	Cursor time.Time
	Today  time.Time
	Risks  map[string]analysis.RiskLevel
	Opts   Options
}

// New returns a calendar with the cursor on today.
func New(today time.Time) Model {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return Model{
		Cursor: today,
		Today:  today,
		Risks:  map[string]analysis.RiskLevel{},
		Opts:   DefaultOptions(),
	}
}

// Update moves the cursor for navigation keys. It reports whether the key
// was consumed; a move also returns a command emitting SelectedMsg.
func (m Model) Update(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	next := m.Cursor
	switch msg.String() {
	case "left", "h":
		next = m.Cursor.AddDate(0, 0, -1)
	case "right", "l":
		next = m.Cursor.AddDate(0, 0, 1)
	case "up", "k":
		next = m.Cursor.AddDate(0, 0, -7)
	case "down", "j":
		next = m.Cursor.AddDate(0, 0, 7)
	case "[", "pgup":
		next = AddMonths(m.Cursor, -1)
	case "]", "pgdown":
		next = AddMonths(m.Cursor, 1)
	case "t":
		next = m.Today
	case "enter", " ":
	default:
		return m, nil, false
	}
	m.Cursor = next
	return m, selectCmd(next), true
}

// View renders the cursor's month.
func (m Model) View() string {
	return Render(m.Cursor, MonthDays(m.Cursor, m.Risks, m.Cursor, m.Today), m.Opts)
}

func selectCmd(t time.Time) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{Date: t} }
}
