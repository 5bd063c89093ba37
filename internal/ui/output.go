package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var riskColors = map[analysis.RiskLevel]*color.Color{
	analysis.RiskHigh:   color.New(color.FgRed, color.Bold),
	analysis.RiskMedium: color.New(color.FgYellow, color.Bold),
	analysis.RiskLow:    color.New(color.FgGreen),
}

// riskLabel colours a level for plain terminal output. Unknown levels print
// as given, uncoloured.
func riskLabel(level analysis.RiskLevel) string {
	if level == "" {
		return "-"
	}
	if c, ok := riskColors[level]; ok {
		return c.Sprint(string(level))
	}
	return string(level)
}

// FormatSummaryList writes summaries as a table, one per line.
func FormatSummaryList(w io.Writer, items []entry.Summary) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No journal entries found.")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("DATE"), bold.Sprint("RISK"), bold.Sprint("ENTRY"))
	for _, it := range items {
		date := it.Date
		if date == "" {
			date = "-"
		}
		tbl.AddRow(date, riskLabel(it.OverallRiskLevel), it.Preview(60))
	}
	fmt.Fprintln(w, tbl)
}

// FormatRecord writes one entry's header and, unless safe is set, its
// analysis rendered as markdown.
func FormatRecord(w io.Writer, date string, rec analysis.Record, markdownStyle string, safe bool) {
	fmt.Fprintf(w, "Date: %s\n", date)
	if rec.OverallRiskLevel != "" {
		fmt.Fprintf(w, "Risk: %s\n", riskLabel(rec.OverallRiskLevel))
	}
	if rec.ConfidenceScore.Valid {
		fmt.Fprintf(w, "Confidence: %.2f\n", rec.ConfidenceScore.Value)
	}
	fmt.Fprintln(w)

	text := rec.EntryText
	if text == "" {
		text = analysis.NoText
	}
	fmt.Fprintln(w, text)
	fmt.Fprintln(w)

	if safe {
		fmt.Fprintln(w, "Analysis hidden (safe mode).")
		return
	}
	fmt.Fprintln(w, RenderAnalysis(rec, 80, markdownStyle))
}

// FormatSaved writes the confirmation for a created entry.
func FormatSaved(w io.Writer, date string, rec analysis.Record) {
	fmt.Fprintf(w, "Saved entry for %s", date)
	if rec.OverallRiskLevel != "" {
		fmt.Fprintf(w, " (risk %s)", riskLabel(rec.OverallRiskLevel))
	}
	fmt.Fprintln(w, ".")
}

// FormatDraftList writes saved drafts, newest first.
func FormatDraftList(w io.Writer, drafts []storage.Draft) {
	if len(drafts) == 0 {
		fmt.Fprintln(w, "No drafts saved.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, d := range drafts {
		tbl.AddRow(d.Date, d.SavedAt.Local().Format("2006-01-02 15:04"), entry.Summary{Text: d.Text}.Preview(60))
	}
	fmt.Fprintln(w, tbl)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SummaryJSON is the JSON representation for list output.
type SummaryJSON struct {
	Date    string             `json:"date"`
	Risk    analysis.RiskLevel `json:"risk,omitempty"`
	Theme   string             `json:"theme,omitempty"`
	Preview string             `json:"preview"`
}

// ToSummaryJSON converts summaries for JSON list output.
func ToSummaryJSON(items []entry.Summary) []SummaryJSON {
	out := make([]SummaryJSON, len(items))
	for i, it := range items {
		out[i] = SummaryJSON{
			Date:    it.Date,
			Risk:    it.OverallRiskLevel,
			Theme:   it.EssenceTheme,
			Preview: it.Preview(80),
		}
	}
	return out
}
