package shell

import (
	"fmt"
	"io"
)

// Shells lists the shells WriteInit supports.
var Shells = []string{"bash", "zsh"}

const promptFuncs = `# moodctl shell integration
__moodctl_prompt_hook() {
  eval "$(command moodctl status --env 2>/dev/null)"
}

moodctl_prompt_info() {
  command moodctl status 2>/dev/null
}
`

// WriteInit writes the integration script for the named shell: a prompt
// hook exporting MOODCTL_* variables, a moodctl_prompt_info helper and
// completions.
func WriteInit(w io.Writer, shell string) error {
	var hook string
	switch shell {
	case "bash":
		hook = `
if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__moodctl_prompt_hook"
else
  PROMPT_COMMAND="__moodctl_prompt_hook;${PROMPT_COMMAND}"
fi
`
	case "zsh":
		hook = `
autoload -Uz add-zsh-hook
add-zsh-hook precmd __moodctl_prompt_hook
`
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh)", shell)
	}

	fmt.Fprint(w, promptFuncs)
	fmt.Fprint(w, hook)
	fmt.Fprintf(w, "\neval \"$(command moodctl completion %s 2>/dev/null)\"\n", shell)
	return nil
}
