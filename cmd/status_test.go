package cmd

import (
	"bytes"
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/chris-regnier/moodctl/internal/shell"
)

func countingListHandler(calls *int32, body string) http.HandlerFunc {
	h := listHandler(http.StatusOK, body)
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		h(w, r)
	}
}

const streakListing = `[
	{"date": "2024-01-05", "overall_risk_level": "LOW"},
	{"date": "2024-01-04", "overall_risk_level": "HIGH"},
	{"date": "2024-01-02", "overall_risk_level": "MEDIUM"}
]`

func TestStatusDefault(t *testing.T) {
	var calls int32
	setupTestEnv(t, countingListHandler(&calls, streakListing))

	var buf bytes.Buffer
	if err := statusRun(context.Background(), &buf, false, false, ""); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	if got := buf.String(); got != "✓ 2d\n" {
		t.Errorf("output = %q", got)
	}

	appConfig.Shell.ShowRisk = true
	buf.Reset()
	if err := statusRun(context.Background(), &buf, false, false, ""); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	if got := buf.String(); got != "✓ 2d low\n" {
		t.Errorf("output = %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("service calls = %d, want 1 (second run from cache)", n)
	}
}

func TestStatusRefreshBypassesCache(t *testing.T) {
	var calls int32
	setupTestEnv(t, countingListHandler(&calls, streakListing))

	for i := 0; i < 2; i++ {
		if err := statusRun(context.Background(), &bytes.Buffer{}, true, false, ""); err != nil {
			t.Fatalf("statusRun: %v", err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("service calls = %d, want 2", n)
	}
}

func TestStatusEnvAndFormat(t *testing.T) {
	var calls int32
	setupTestEnv(t, countingListHandler(&calls, streakListing))

	var buf bytes.Buffer
	if err := statusRun(context.Background(), &buf, false, true, ""); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	want := "export MOODCTL_TODAY=\"✓\"\nexport MOODCTL_STREAK=\"2\"\nexport MOODCTL_STREAK_ICON=\"d\"\nexport MOODCTL_RISK=\"LOW\"\n"
	if got := buf.String(); got != want {
		t.Errorf("env output = %q", got)
	}

	buf.Reset()
	if err := statusRun(context.Background(), &buf, false, false, "{{.Streak}}/{{.HasToday}}"); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	if got := buf.String(); got != "2/true\n" {
		t.Errorf("format output = %q", got)
	}

	if err := statusRun(context.Background(), &buf, false, false, "{{.Nope"); exitCode(err) != 1 {
		t.Errorf("bad template: err = %v", err)
	}
}

func TestWriteInvalidatesPromptCache(t *testing.T) {
	var calls int32
	setupTestEnv(t, countingListHandler(&calls, streakListing))

	if err := statusRun(context.Background(), &bytes.Buffer{}, false, false, ""); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	if shell.ReadCache(appConfig.DataDir) == nil {
		t.Fatal("expected prompt cache")
	}
	invalidateCachePostRun(writeCmd, nil)
	if shell.ReadCache(appConfig.DataDir) != nil {
		t.Error("prompt cache should be invalidated")
	}
}
