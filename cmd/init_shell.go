package cmd

import (
	"os"
	"strings"

	"github.com/chris-regnier/moodctl/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up:
- Shell completions
- Prompt hook exporting MOODCTL_TODAY, MOODCTL_STREAK and MOODCTL_RISK
- moodctl_prompt_info helper function

Supported shells: ` + strings.Join(shell.Shells, ", "),
	Example: `  # Add to ~/.bashrc
  eval "$(moodctl init bash)"

  # Add to ~/.zshrc
  eval "$(moodctl init zsh)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Shells,
	// The script is static; skip config and service setup.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := shell.WriteInit(os.Stdout, args[0]); err != nil {
			return exitOnError(&exitError{code: 1, err: err})
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
