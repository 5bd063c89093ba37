package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveEditorConfig(t *testing.T) {
	result := ResolveEditor("nano")
	if result != "nano" {
		t.Errorf("expected nano, got %q", result)
	}
}

func TestResolveEditorEnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "vim")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "vim" {
		t.Errorf("expected vim (from EDITOR), got %q", result)
	}
}

func TestResolveEditorEnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "code" {
		t.Errorf("expected code (from VISUAL), got %q", result)
	}
}

func TestResolveEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	result := ResolveEditor("")
	if result != "vi" {
		t.Errorf("expected vi (fallback), got %q", result)
	}
}

// script writes an executable editor that replaces the buffer with body.
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	src := "#!/bin/sh\ncat > \"$1\" <<'EOF'\n" + body + "EOF\n"
	if err := os.WriteFile(path, []byte(src), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEditWithTrueCommand(t *testing.T) {
	content, changed, err := Edit("true", "original content")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed {
		t.Error("expected changed=false for unchanged content")
	}
	if content != "original content" {
		t.Errorf("content = %q, want %q", content, "original content")
	}
}

func TestEditChanged(t *testing.T) {
	ed := script(t, "Felt calmer after the walk.\n# How was your day?\n")
	content, changed, err := Edit(ed, "")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !changed {
		t.Error("expected changed=true")
	}
	if content != "Felt calmer after the walk." {
		t.Errorf("content = %q", content)
	}
}

func TestEditEmptyResult(t *testing.T) {
	ed := script(t, "# only comments\n\n")
	content, changed, err := Edit(ed, "original")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed {
		t.Error("expected changed=false for empty result")
	}
	if content != "" {
		t.Errorf("content = %q, want empty", content)
	}
}

func TestEditFailingEditor(t *testing.T) {
	if _, _, err := Edit("false", "x"); err == nil {
		t.Error("expected error from failing editor")
	}
}

func TestPrepareAndCollect(t *testing.T) {
	path, err := Prepare("draft so far")
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "draft so far\n\n# How was your day?") {
		t.Errorf("buffer = %q", data)
	}

	got, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got != "draft so far" {
		t.Errorf("collected %q", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp file not removed")
	}
}

func TestCommandEmpty(t *testing.T) {
	if _, err := Command("  ", "/tmp/x"); err == nil {
		t.Error("expected error for empty editor command")
	}
}

func TestStripComments(t *testing.T) {
	in := "line one\n# drop\nline two\n#also drop\n"
	if got := StripComments(in); got != "line one\nline two" {
		t.Errorf("got %q", got)
	}
}
