package cmd

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/config"
	"github.com/chris-regnier/moodctl/internal/storage/markdown"
)

var testNow = time.Date(2024, 1, 5, 20, 15, 0, 0, time.Local)

// setupTestEnv points the package globals at a test service backed by h
// and a fresh draft directory.
func setupTestEnv(t *testing.T, h http.HandlerFunc) *markdown.Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	dataDir := t.TempDir()
	d, err := markdown.New(dataDir)
	if err != nil {
		t.Fatalf("creating draft storage: %v", err)
	}

	svc = client
	drafts = d
	appConfig = &config.Config{
		DataDir:  dataDir,
		MaxWidth: 100,
		Shell: config.ShellConfig{
			CacheTTL:    5 * time.Minute,
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "d",
		},
	}
	jsonOutput = false
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = time.Now })
	return d
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
