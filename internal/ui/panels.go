package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// RenderPanels draws each analysis panel as a bordered card of the given
// outer width, stacked vertically.
func RenderPanels(panels []analysis.Panel, theme Theme, width int) string {
	inner := max(width-4, 10)
	cards := make([]string, 0, len(panels))
	for _, p := range panels {
		cards = append(cards, renderPanel(p, theme, inner))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderPanel(p analysis.Panel, theme Theme, inner int) string {
	text := theme.ViewPaneStyle().Width(inner)
	muted := theme.HelpStyle().Italic(true).Width(inner)

	lines := []string{theme.PanelTitleStyle(p.Color).Render(p.Icon + " " + p.Title)}
	if p.Intro != "" {
		lines = append(lines, muted.Render(p.Intro))
	}
	if p.List {
		if len(p.Items) == 0 {
			lines = append(lines, muted.Render("(none)"))
		}
		for _, it := range p.Items {
			lines = append(lines, text.Render("• "+it))
		}
	} else {
		lines = append(lines, text.Render(p.Body))
	}
	if p.Kind == analysis.PanelCues {
		lines = append(lines, theme.AccentStyle().Render("[r] "+analysis.RemindName))
	}
	return theme.PanelStyle(p.Color).Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// RenderEntryHeader draws the date, risk badge and flags above the panels.
func RenderEntryHeader(sum entry.Summary, theme Theme) string {
	parts := []string{theme.HeaderStyle().Render(sum.Date)}
	if sum.OverallRiskLevel != "" {
		parts = append(parts, theme.RiskStyle(sum.OverallRiskLevel).Render(string(sum.OverallRiskLevel)+" risk"))
	}
	if sum.ConfidenceScore.Valid {
		parts = append(parts, theme.HelpStyle().Render(fmt.Sprintf("confidence %.2f", sum.ConfidenceScore.Value)))
	}
	if sum.Blocked() {
		parts = append(parts, theme.DangerStyle().Render("action: "+sum.ActionRequired))
	} else if sum.ActionRequired != "" {
		parts = append(parts, theme.HelpStyle().Render("action: "+sum.ActionRequired))
	}
	return strings.Join(parts, theme.HelpStyle().Render("  ·  "))
}

// RenderEntryText draws the entry text card, with a placeholder when the
// service did not echo it.
func RenderEntryText(sum entry.Summary, theme Theme, width int) string {
	inner := max(width-4, 10)
	text := sum.KnownText()
	body := theme.ViewPaneStyle().Width(inner).Render(text)
	if text == "" {
		body = theme.HelpStyle().Italic(true).Width(inner).Render(analysis.NoText)
	}
	title := theme.HeaderStyle().Render("Your Journal Entry")
	return theme.BorderStyle().Padding(0, 1).Width(inner + 2).Render(title + "\n" + body)
}
