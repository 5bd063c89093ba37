package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/chris-regnier/moodctl/internal/ui"
)

func listHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/journal-entries" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

const sampleListing = `[
	{"date": "2024-01-05", "entry_text": "Walked by the river.", "overall_risk_level": "LOW"},
	{"date": "2024-01-02", "essence_theme": "Overwhelm", "overall_risk_level": "HIGH"}
]`

func TestListTable(t *testing.T) {
	setupTestEnv(t, listHandler(http.StatusOK, sampleListing))

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, ""); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"DATE", "2024-01-05", "Walked by the river.", "HIGH", "Overwhelm"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListDateFilter(t *testing.T) {
	setupTestEnv(t, listHandler(http.StatusOK, sampleListing))

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, "2024-01-02"); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	out := stripANSI(buf.String())
	if strings.Contains(out, "2024-01-05") {
		t.Error("filtered listing should not include 2024-01-05")
	}
	if !strings.Contains(out, "Overwhelm") {
		t.Error("expected 2024-01-02 entry")
	}
}

func TestListNonArrayIsEmpty(t *testing.T) {
	setupTestEnv(t, listHandler(http.StatusOK, `{"message": "no entries yet"}`))

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, ""); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	if got := buf.String(); got != "No journal entries found.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestListServiceFailure(t *testing.T) {
	setupTestEnv(t, listHandler(http.StatusInternalServerError, "boom"))

	err := listRun(context.Background(), io.Discard, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if exitCode(err) != 2 {
		t.Errorf("exit code = %d, want 2", exitCode(err))
	}
}

func TestListJSON(t *testing.T) {
	setupTestEnv(t, listHandler(http.StatusOK, sampleListing))
	jsonOutput = true

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, ""); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	var got []ui.SummaryJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2024-01-05" || got[1].Risk != "HIGH" {
		t.Errorf("decoded = %+v", got)
	}
}
