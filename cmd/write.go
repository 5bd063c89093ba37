package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/editor"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write [text...]",
	Short: "Write today's journal entry",
	Long: `Send a journal entry for analysis and print the result.

If text is provided as arguments, it is used directly.
If "-" is provided, text is read from stdin.
If no text is provided, your editor is opened, starting from today's saved
draft if there is one.

If the service cannot be reached the text is kept as today's draft.`,
	Example: `  moodctl write "Felt calmer after the walk"
  echo "long day" | moodctl write -
  moodctl write`,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := now()
		text, err := readEntryText(args, os.Stdin, entry.FormatDate(day))
		if err != nil {
			return exitOnError(err)
		}
		return exitOnError(writeRun(cmd.Context(), os.Stdout, text, day))
	},
}

// readEntryText resolves the entry text from arguments, stdin or the editor.
func readEntryText(args []string, stdin io.Reader, date string) (string, error) {
	switch {
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil

	case len(args) > 0:
		return strings.Join(args, " "), nil

	default:
		initial := ""
		if d, err := drafts.Load(date); err == nil {
			initial = d.Text
		} else if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("error loading draft for %s: %v", date, err)
		}
		content, changed, err := editor.Edit(editor.ResolveEditor(appConfig.Editor), initial)
		if err != nil {
			return "", editorError(err)
		}
		if !changed && initial == "" {
			return "", &exitError{code: 1, err: errors.New("empty content")}
		}
		return content, nil
	}
}

func writeRun(ctx context.Context, w io.Writer, text string, day time.Time) error {
	text = strings.TrimSpace(text)
	if err := entry.ValidateContent(text); err != nil {
		return &exitError{code: 1, err: err}
	}
	date := entry.FormatDate(day)

	rec, err := svc.CreateEntry(ctx, text)
	if err != nil {
		if derr := drafts.Save(storage.Draft{Date: date, Text: text}); derr != nil {
			return fmt.Errorf("saving entry: %w (draft not kept: %v)", err, derr)
		}
		return fmt.Errorf("saving entry: %w (kept as draft for %s)", err, date)
	}

	if err := drafts.Discard(date); err != nil {
		log.Printf("error discarding draft for %s: %v", date, err)
	}

	if jsonOutput {
		sum, err := entry.NewSummary(rec, text, date)
		if err != nil {
			return err
		}
		return ui.FormatJSON(w, sum)
	}
	ui.FormatSaved(w, date, rec)
	return nil
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
