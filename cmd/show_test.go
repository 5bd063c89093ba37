package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/entry"
)

func byDateHandler(t *testing.T, entries map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/journal-entry/by-date" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		body, ok := entries[r.URL.Query().Get("date")]
		if !ok {
			io.WriteString(w, `{"message": "No entry found for this date."}`)
			return
		}
		io.WriteString(w, body)
	}
}

const sampleRecord = `{
	"entry_text": "Long week, but the walk helped.",
	"essence_theme": "Tired but hopeful",
	"overall_risk_level": "MEDIUM",
	"confidence_score": 0.82,
	"coping_suggestions": ["Stretch after lunch"]
}`

func TestShowRendersEntry(t *testing.T) {
	setupTestEnv(t, byDateHandler(t, map[string]string{"2024-01-05": sampleRecord}))

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, testNow, false); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"Date: 2024-01-05", "Risk: MEDIUM", "Long week, but the walk helped.", "hopeful", "Stretch"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestShowSafeModeHidesAnalysis(t *testing.T) {
	setupTestEnv(t, byDateHandler(t, map[string]string{"2024-01-05": sampleRecord}))

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, testNow, true); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "hopeful") {
		t.Error("analysis shown in safe mode")
	}
	if !strings.Contains(out, "Analysis hidden (safe mode).") {
		t.Errorf("expected safe mode notice, got:\n%s", out)
	}
}

func TestShowUnavailable(t *testing.T) {
	setupTestEnv(t, byDateHandler(t, nil))

	var buf bytes.Buffer
	err := showRun(context.Background(), &buf, testNow, false)
	if !errors.Is(err, api.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", exitCode(err))
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestShowJSON(t *testing.T) {
	setupTestEnv(t, byDateHandler(t, map[string]string{"2024-01-05": sampleRecord}))
	jsonOutput = true

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, testNow, true); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	var got entry.Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Date != "2024-01-05" || got.Text != "Long week, but the walk helped." {
		t.Errorf("decoded = %+v", got)
	}
	if got.EssenceTheme != "" {
		t.Error("safe JSON output should omit the analysis")
	}
}

func TestParseDateArg(t *testing.T) {
	if _, err := parseDateArg("2024-01-05"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	_, err := parseDateArg("01/05/2024")
	if err == nil {
		t.Fatal("expected error")
	}
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", exitCode(err))
	}
}
