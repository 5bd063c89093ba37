package mcptools

import (
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
)

func toAnalysis(rec analysis.Record, text string) *Analysis {
	a := &Analysis{
		Text:           text,
		Risk:           string(rec.OverallRiskLevel),
		Theme:          rec.EssenceTheme,
		Strengths:      rec.IdentifiedStrengths,
		Pattern:        rec.HistoricalPattern,
		Reframe:        rec.ReappraisalMessage,
		Cues:           rec.CopingSuggestions,
		ActionRequired: rec.ActionRequired,
	}
	if a.Text == "" {
		a.Text = rec.EntryText
	}
	if rec.ConfidenceScore.Valid {
		v := rec.ConfidenceScore.Value
		a.Confidence = &v
	}
	return a
}

// inRange reports whether date falls within [start, end]. Empty bounds are
// open; an undated entry only matches when both are open.
func inRange(date string, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	t, err := entry.ParseDate(date)
	if err != nil {
		return false
	}
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := entry.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
