package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var showSafe bool

var showCmd = &cobra.Command{
	Use:   "show [YYYY-MM-DD]",
	Short: "Show the entry for a date",
	Long: `Fetch the entry for a date (today by default) and render its analysis.

With --safe the entry text is shown but the analysis is hidden.`,
	Example: `  moodctl show
  moodctl show 2024-01-05
  moodctl show 2024-01-05 --safe
  moodctl show --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := now()
		if len(args) == 1 {
			t, err := parseDateArg(args[0])
			if err != nil {
				return exitOnError(err)
			}
			day = t
		}
		return exitOnError(showRun(cmd.Context(), os.Stdout, day, showSafe))
	},
}

func showRun(ctx context.Context, w io.Writer, day time.Time, safe bool) error {
	date := entry.FormatDate(day)
	rec, err := svc.EntryByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("no entry available for %s: %w", date, err)
	}

	if jsonOutput {
		sum := entry.Summary{Date: date, Text: rec.EntryText}
		if !safe {
			sum.Record = rec
		}
		return ui.FormatJSON(w, sum)
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatRecord(&buf, date, rec, theme.MarkdownStyle, safe)
	return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, theme)
}

func parseDateArg(s string) (time.Time, error) {
	t, err := entry.ParseDate(s)
	if err != nil {
		return time.Time{}, &exitError{code: 1, err: err}
	}
	return t, nil
}

func init() {
	showCmd.Flags().BoolVar(&showSafe, "safe", false, "hide the analysis")
	rootCmd.AddCommand(showCmd)
}
