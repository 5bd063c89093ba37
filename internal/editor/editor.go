package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Prompt is written below the draft in the editor buffer. Lines starting
// with '#' are dropped when the buffer is read back.
const Prompt = "# How was your day? What emotions stood out?\n" +
	"# Lines starting with '#' are ignored. An empty buffer cancels.\n"

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Prepare writes initial plus the prompt to a temp file and returns its path.
// The caller removes it, usually through Collect.
func Prepare(initial string) (string, error) {
	tmp, err := os.CreateTemp("", "moodctl-*.md")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	body := initial
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	body += "\n" + Prompt

	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmpName, nil
}

// Command builds the editor process for path without starting it.
func Command(editorCmd, path string) (*exec.Cmd, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...), nil
}

// Collect reads the edited buffer, strips prompt lines and removes the file.
func Collect(path string) (string, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading edited file: %w", err)
	}
	return StripComments(string(data)), nil
}

// StripComments drops lines starting with '#' and trims the result.
func StripComments(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(l, "#") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Edit opens initial in an editor attached to the terminal and returns the
// edited text. An empty result or unchanged text reports changed=false.
func Edit(editorCmd string, initial string) (content string, changed bool, err error) {
	path, err := Prepare(initial)
	if err != nil {
		return "", false, err
	}

	cmd, err := Command(editorCmd, path)
	if err != nil {
		os.Remove(path)
		return "", false, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		os.Remove(path)
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	result, err := Collect(path)
	if err != nil {
		return "", false, err
	}
	if result == "" {
		return "", false, nil
	}
	if result == strings.TrimSpace(initial) {
		return initial, false, nil
	}
	return result, true, nil
}
