package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/config"
	"github.com/chris-regnier/moodctl/internal/editor"
	"github.com/chris-regnier/moodctl/internal/notify"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/storage/markdown"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile    string
	jsonOutput bool
	baseURL    string
	appConfig  *config.Config
	svc        api.Service
	drafts     storage.Drafts
)

// now is swapped in tests.
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "moodctl",
	Short: "An emotional journaling client",
	Long: `moodctl is a journaling client for an analysis service. Write a daily
entry, browse past entries on a calendar marked by risk level, and read the
structured reflection the service returns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if baseURL != "" {
			appConfig.Server.BaseURL = baseURL
		}

		client, err := api.New(appConfig.Server.BaseURL, api.WithTimeout(appConfig.Server.Timeout))
		if err != nil {
			return fmt.Errorf("initializing service client: %w", err)
		}
		svc = client

		drafts, err = markdown.New(appConfig.DataDir)
		if err != nil {
			return fmt.Errorf("initializing draft storage: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to today's entry
			return exitOnError(showRun(cmd.Context(), os.Stdout, now(), false))
		}

		var n notify.Notifier = notify.Discard{}
		if appConfig.Reminders.Notify {
			n = notify.Desktop{}
		}
		defer invalidateCachePostRun(cmd, args)
		return ui.RunDashboard(cmd.Context(), svc, ui.TUIConfig{
			Editor:   editor.ResolveEditor(appConfig.Editor),
			MaxWidth: appConfig.MaxWidth,
			Theme:    ui.ResolveTheme(appConfig.Theme),
			LogFile:  appConfig.LogFile,
			Autosave: appConfig.Drafts.Autosave,
			Drafts:   drafts,
			Notifier: n,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&baseURL, "server", "", "analysis service base URL")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// Exit codes: 1 for input and missing entries, 2 for service and storage
// failures, 3 for editor failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func editorError(err error) error {
	return &exitError{code: 3, err: fmt.Errorf("editor: %w", err)}
}

func exitCode(err error) int {
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, api.ErrUnavailable),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrValidation):
		return 1
	default:
		return 2
	}
}

// exitOnError prints err to stderr and exits with its code.
func exitOnError(err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitCode(err))
	return nil
}
