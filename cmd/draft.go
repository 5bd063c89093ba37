package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	draftDate    string
	draftDiscard bool
	draftAll     bool
	draftForce   bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Show or discard a saved draft",
	Long: `Show the draft saved for a date (today by default), list every saved
draft, or discard one. Drafts are kept when a save fails and when the
dashboard closes with unsent text.`,
	Example: `  moodctl draft
  moodctl draft --all
  moodctl draft --date 2024-01-05 --discard
  moodctl draft --discard --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if draftAll {
			return exitOnError(draftListRun(os.Stdout))
		}

		date := entry.FormatDate(now())
		if draftDate != "" {
			t, err := parseDateArg(draftDate)
			if err != nil {
				return exitOnError(err)
			}
			date = entry.FormatDate(t)
		}

		if draftDiscard {
			return exitOnError(draftDiscardRun(os.Stdout, date, draftForce))
		}
		return exitOnError(draftShowRun(os.Stdout, date))
	},
}

func draftShowRun(w io.Writer, date string) error {
	d, err := drafts.Load(date)
	if err != nil {
		return fmt.Errorf("draft for %s: %w", date, err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, d)
	}
	fmt.Fprintln(w, d.Text)
	return nil
}

func draftListRun(w io.Writer) error {
	all, err := drafts.List()
	if err != nil {
		return fmt.Errorf("listing drafts: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, all)
	}
	ui.FormatDraftList(w, all)
	return nil
}

func draftDiscardRun(w io.Writer, date string, force bool) error {
	d, err := drafts.Load(date)
	if err != nil {
		return fmt.Errorf("draft for %s: %w", date, err)
	}

	if !force {
		preview := entry.Summary{Text: d.Text}.Preview(60)
		confirmed, err := ui.Confirm("Discard this draft?", date+": "+preview, ui.ResolveTheme(appConfig.Theme))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if err := drafts.Discard(date); err != nil {
		return fmt.Errorf("discarding draft: %w", err)
	}
	fmt.Fprintf(w, "Discarded draft for %s.\n", date)
	return nil
}

func init() {
	draftCmd.Flags().StringVar(&draftDate, "date", "", "draft date (YYYY-MM-DD)")
	draftCmd.Flags().BoolVar(&draftDiscard, "discard", false, "discard the draft")
	draftCmd.Flags().BoolVar(&draftAll, "all", false, "list every saved draft")
	draftCmd.Flags().BoolVar(&draftForce, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(draftCmd)
}
