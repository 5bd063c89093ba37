package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/template"

	"github.com/chris-regnier/moodctl/internal/shell"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	Streak     int
	StreakIcon string
	Risk       string
	HasToday   bool
}

var (
	statusEnv     bool
	statusRefresh bool
	statusFormat  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show journal prompt status",
	Long: `Show journal status for shell prompt integration.

Outputs a today indicator and the current streak of consecutive days with
entries. Reads from cache when fresh, queries the service when stale.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  moodctl status
  moodctl status --env
  moodctl status --refresh
  moodctl status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}} {{.Risk}}"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitOnError(statusRun(cmd.Context(), os.Stdout, statusRefresh, statusEnv, statusFormat))
	},
}

func statusRun(ctx context.Context, w io.Writer, refresh, env bool, format string) error {
	cache := shell.ReadCache(appConfig.DataDir)
	if refresh || !cache.IsFresh(appConfig.Shell.CacheTTL, now()) {
		st, err := shell.FetchStatus(ctx, svc, now())
		if err != nil {
			return fmt.Errorf("computing status: %w", err)
		}
		cache = shell.NewCache(st, now())
		if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
			// Non-fatal: cache write failure shouldn't break the prompt
			log.Printf("could not write prompt cache: %v", err)
		}
	}

	data := buildStatusData(cache)
	switch {
	case env:
		return outputEnv(w, data)
	case format != "":
		return outputTemplate(w, data, format)
	default:
		return outputDefault(w, data)
	}
}

func buildStatusData(cache *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if cache.Today {
		icon = appConfig.Shell.TodayIcon
	}
	return statusData{
		TodayIcon:  icon,
		Streak:     cache.Streak,
		StreakIcon: appConfig.Shell.StreakIcon,
		Risk:       string(cache.LatestRisk),
		HasToday:   cache.Today,
	}
}

func outputEnv(w io.Writer, data statusData) error {
	fmt.Fprintf(w, "export MOODCTL_TODAY=%q\n", data.TodayIcon)
	fmt.Fprintf(w, "export MOODCTL_STREAK=%q\n", fmt.Sprint(data.Streak))
	fmt.Fprintf(w, "export MOODCTL_STREAK_ICON=%q\n", data.StreakIcon)
	if data.Risk != "" {
		fmt.Fprintf(w, "export MOODCTL_RISK=%q\n", data.Risk)
	}
	return nil
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return &exitError{code: 1, err: fmt.Errorf("invalid format template: %w", err)}
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) error {
	parts := []string{fmt.Sprintf("%s %d%s", data.TodayIcon, data.Streak, data.StreakIcon)}
	if appConfig.Shell.ShowRisk && data.Risk != "" {
		parts = append(parts, strings.ToLower(data.Risk))
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
	return nil
}

// invalidateCachePostRun drops the prompt cache after commands that may
// add an entry.
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	if appConfig == nil {
		return nil
	}
	if err := shell.InvalidateCache(appConfig.DataDir); err != nil {
		log.Printf("could not invalidate prompt cache: %v", err)
	}
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusEnv, "env", false, "output shell environment variable assignments")
	statusCmd.Flags().BoolVar(&statusRefresh, "refresh", false, "force cache refresh")
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
