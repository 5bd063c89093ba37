package analysis

import (
	"fmt"
	"strings"
)

// Panel identifies one themed section of the analysis display.
type Panel struct {
	Kind  PanelKind
	Title string
	Icon  string
	Color string
	// Intro is an optional line shown above Items.
	Intro string
	// Body is set for text panels; it is never empty.
	Body string
	// Items is set for list panels, in the order given by the service.
	Items []string
	List  bool
}

// PanelKind distinguishes panels for layout purposes.
type PanelKind int

const (
	PanelTheme PanelKind = iota
	PanelStrengths
	PanelPattern
	PanelReframe
	PanelCues
	PanelSafety
	PanelFollowUp
)

// Placeholders shown when the corresponding field is absent.
const (
	NoTheme    = "No theme available."
	NoPattern  = "No clear recurring pattern detected yet."
	NoReframe  = "No reframing message available."
	NoText     = "Journal text not available from backend."
	CuesIntro  = "Ready to be scheduled for Morning, Mid-day, and Evening reinforcement:"
	RemindAck  = "Simulating Habit Flow update and Notification Scheduling..."
	RemindName = "Schedule 3 New Cues Now"
)

// Theme colors for the analysis panels.
const (
	ColorStrength   = "#FFC72C"
	ColorAction     = "#4EE581"
	ColorReflection = "#B8B0FF"
	ColorEssence    = "#00CCFF"
)

// Panels projects a record onto its display panels. Text panels fall back
// to a placeholder; list panels keep service order and may be empty.
func Panels(r Record) []Panel {
	panels := []Panel{
		{
			Kind:  PanelTheme,
			Title: "The Core Theme",
			Icon:  "♥",
			Color: ColorEssence,
			Body:  orDefault(r.EssenceTheme, NoTheme),
		},
		{
			Kind:  PanelStrengths,
			Title: "Your Inner Strengths",
			Icon:  "↗",
			Color: ColorStrength,
			Items: nonNil(r.IdentifiedStrengths),
			List:  true,
		},
		{
			Kind:  PanelPattern,
			Title: "Historical Pattern",
			Icon:  "✦",
			Color: ColorReflection,
			Body:  orDefault(r.HistoricalPattern, NoPattern),
		},
		{
			Kind:  PanelReframe,
			Title: "Reframing & Insight",
			Icon:  "⛨",
			Color: ColorReflection,
			Body:  orDefault(r.ReappraisalMessage, NoReframe),
		},
		{
			Kind:  PanelCues,
			Title: "Actionable Cues (Proactive)",
			Icon:  "✓",
			Color: ColorAction,
			Intro: CuesIntro,
			Items: nonNil(r.CopingSuggestions),
			List:  true,
		},
	}

	if safety := safetyLines(r); len(safety) > 0 {
		panels = append(panels, Panel{
			Kind:  PanelSafety,
			Title: "Safety Check",
			Icon:  "!",
			Color: riskOr(r.OverallRiskLevel, ColorReflection),
			Items: safety,
			List:  true,
		})
	}

	if len(r.ChatbotContext) > 0 {
		items := make([]string, 0, len(r.ChatbotContext))
		for _, qa := range r.ChatbotContext {
			items = append(items, fmt.Sprintf("%s: %s", qa.Q, qa.A))
		}
		panels = append(panels, Panel{
			Kind:  PanelFollowUp,
			Title: "Follow-up Questions",
			Icon:  "?",
			Color: ColorEssence,
			Items: items,
			List:  true,
		})
	}

	return panels
}

// Markdown renders panels as a markdown document, used by the CLI output
// before glamour styling.
func Markdown(panels []Panel) string {
	var b strings.Builder
	for i, p := range panels {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s %s\n\n", p.Icon, p.Title)
		if p.Intro != "" {
			fmt.Fprintf(&b, "*%s*\n\n", p.Intro)
		}
		if p.List {
			for _, item := range p.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
			continue
		}
		fmt.Fprintf(&b, "%s\n", p.Body)
	}
	return b.String()
}

func safetyLines(r Record) []string {
	var lines []string
	if r.OverallRiskLevel != "" {
		lines = append(lines, "Risk level: "+string(r.OverallRiskLevel))
	}
	if r.ActionRequired != "" {
		lines = append(lines, "Action: "+r.ActionRequired)
	}
	if r.ConfidenceScore.Valid {
		lines = append(lines, fmt.Sprintf("Confidence: %.2f", r.ConfidenceScore.Value))
	}
	if r.SafetyComment != "" {
		lines = append(lines, r.SafetyComment)
	}
	return lines
}

func riskOr(level RiskLevel, fallback string) string {
	if c := level.Color(); c != "" {
		return c
	}
	return fallback
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
