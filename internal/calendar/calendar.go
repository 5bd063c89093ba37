// Package calendar renders a Sunday-first month grid with a per-day risk
// marker and moves a day cursor across it.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// Marker is drawn after a day that has a known risk level.
const Marker = "●"

// Header is the weekday header line, aligned with the rendered cells.
const Header = "Su  Mo  Tu  We  Th  Fr  Sa"

// Day describes one rendered day.
type Day struct {
	Day        int
	Risk       analysis.RiskLevel
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	DayStyle      lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
}

// DefaultOptions returns plain terminal styling.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		DayStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowTitle:     true,
	}
}

// DaysIn returns the number of days in month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// Weeks lays out month as rows of seven day numbers, Sunday first, with 0
// for cells outside the month.
func Weeks(month time.Time) [][7]int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	offset := int(first.Weekday())
	n := DaysIn(month)
	rows := (offset + n + 6) / 7

	out := make([][7]int, rows)
	for i := 0; i < rows*7; i++ {
		day := i - offset + 1
		if day >= 1 && day <= n {
			out[i/7][i%7] = day
		}
	}
	return out
}

// Title is the month heading, e.g. "January 2024".
func Title(month time.Time) string {
	return month.Format("January 2006")
}

// Render produces a multi-line calendar for month. Days not in days render
// undecorated.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	n := DaysIn(month)
	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= n {
			byDay[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowTitle {
		lines = append(lines, opts.TitleStyle.Render(Title(month)))
	}
	lines = append(lines, opts.HeaderStyle.Render(Header))

	for _, week := range Weeks(month) {
		cells := make([]string, 0, 7)
		for _, day := range week {
			if day == 0 {
				cells = append(cells, "   ")
				continue
			}
			info := byDay[day]
			info.Day = day
			cells = append(cells, renderDay(info, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(info Day, opts Options) string {
	style := opts.DayStyle
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = opts.SelectedStyle.Inherit(style)
	}
	cell := style.Render(fmt.Sprintf("%2d", info.Day))

	if c := info.Risk.Color(); c != "" {
		return cell + lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(Marker)
	}
	return cell + " "
}

// MonthDays builds the Day slice for month from a date-keyed risk map.
func MonthDays(month time.Time, risks map[string]analysis.RiskLevel, selected, today time.Time) []Day {
	n := DaysIn(month)
	out := make([]Day, 0, n)
	for d := 1; d <= n; d++ {
		t := time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, month.Location())
		out = append(out, Day{
			Day:        d,
			Risk:       risks[entry.FormatDate(t)],
			IsToday:    sameDay(t, today),
			IsSelected: sameDay(t, selected),
		})
	}
	return out
}

// AddMonths moves t by n months, clamping the day to the target month's
// length so Jan 31 plus one month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	day := min(t.Day(), DaysIn(first))
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
