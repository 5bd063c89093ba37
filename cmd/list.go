package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var listDate string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  "List every entry the service holds with its date, risk level and a preview.",
	Example: `  moodctl list
  moodctl list --date 2024-01-05
  moodctl list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listDate != "" {
			if _, err := parseDateArg(listDate); err != nil {
				return exitOnError(err)
			}
		}
		return exitOnError(listRun(cmd.Context(), os.Stdout, listDate))
	},
}

func listRun(ctx context.Context, w io.Writer, date string) error {
	items, err := svc.ListEntries(ctx)
	if err != nil {
		// A listing that is not an array means no entries; anything else
		// is a real failure.
		if !errors.Is(err, api.ErrMalformed) {
			return fmt.Errorf("listing entries: %w", err)
		}
		log.Printf("listing degraded to empty: %v", err)
		items = []entry.Summary{}
	}

	if date != "" {
		filtered := items[:0:0]
		for _, it := range items {
			if it.Date == date {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaryJSON(items))
	}

	var buf bytes.Buffer
	ui.FormatSummaryList(&buf, items)
	return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "only entries for this date (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd)
}
