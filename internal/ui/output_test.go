package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestFormatSummaryListEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatSummaryList(&buf, nil)
	if got := buf.String(); got != "No journal entries found.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFormatSummaryList(t *testing.T) {
	var buf bytes.Buffer
	FormatSummaryList(&buf, []entry.Summary{
		{Date: "2024-01-05", Text: "Walked by the river.", Record: analysis.Record{OverallRiskLevel: analysis.RiskLow}},
		{Record: analysis.Record{EssenceTheme: "Quiet resolve", OverallRiskLevel: "Error"}},
	})
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "DATE") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"2024-01-05", "LOW", "Walked by the river.", "Quiet resolve", "Error"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasPrefix(lines[2], "-") {
		t.Errorf("undated row should show '-', got %q", lines[2])
	}
}

func TestFormatRecordSafeMode(t *testing.T) {
	rec := analysis.Record{
		EntryText:        "Long week.",
		EssenceTheme:     "Tired but hopeful",
		OverallRiskLevel: analysis.RiskMedium,
		ConfidenceScore:  analysis.Score{Value: 0.82, Valid: true},
	}

	var buf bytes.Buffer
	FormatRecord(&buf, "2024-01-05", rec, "notty", true)
	out := buf.String()
	for _, want := range []string{"Date: 2024-01-05", "Risk: MEDIUM", "Confidence: 0.82", "Long week.", "Analysis hidden (safe mode)."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Tired but hopeful") {
		t.Error("analysis printed in safe mode")
	}

	buf.Reset()
	FormatRecord(&buf, "2024-01-05", rec, "notty", false)
	if !strings.Contains(buf.String(), "Tired but hopeful") {
		t.Error("expected analysis outside safe mode")
	}
}

func TestFormatRecordMissingText(t *testing.T) {
	var buf bytes.Buffer
	FormatRecord(&buf, "2024-01-05", analysis.Record{}, "notty", true)
	if !strings.Contains(buf.String(), analysis.NoText) {
		t.Error("expected missing-text placeholder")
	}
}

func TestFormatSaved(t *testing.T) {
	var buf bytes.Buffer
	FormatSaved(&buf, "2024-01-05", analysis.Record{OverallRiskLevel: analysis.RiskHigh})
	if got := buf.String(); got != "Saved entry for 2024-01-05 (risk HIGH).\n" {
		t.Errorf("output = %q", got)
	}
	buf.Reset()
	FormatSaved(&buf, "2024-01-05", analysis.Record{})
	if got := buf.String(); got != "Saved entry for 2024-01-05.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFormatDraftList(t *testing.T) {
	var buf bytes.Buffer
	FormatDraftList(&buf, []storage.Draft{})
	if got := buf.String(); got != "No drafts saved.\n" {
		t.Errorf("output = %q", got)
	}

	buf.Reset()
	FormatDraftList(&buf, []storage.Draft{
		{Date: "2024-01-05", Text: "first line\nsecond line", SavedAt: time.Date(2024, 1, 5, 21, 0, 0, 0, time.Local)},
	})
	out := buf.String()
	if !strings.Contains(out, "2024-01-05 21:00") || !strings.Contains(out, "first line second line") {
		t.Errorf("output = %q", out)
	}
}

func TestToSummaryJSON(t *testing.T) {
	items := ToSummaryJSON([]entry.Summary{
		{Date: "2024-01-05", Text: "hello", Record: analysis.Record{OverallRiskLevel: analysis.RiskLow, EssenceTheme: "Calm"}},
	})

	var buf bytes.Buffer
	if err := FormatJSON(&buf, items); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d items", len(decoded))
	}
	got := decoded[0]
	if got["date"] != "2024-01-05" || got["risk"] != "LOW" || got["theme"] != "Calm" || got["preview"] != "hello" {
		t.Errorf("decoded = %v", got)
	}
}
