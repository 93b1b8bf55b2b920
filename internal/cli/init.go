package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

const zshWidget = `# histpick: add to ~/.zshrc with  eval "$(%[1]s init zsh)"
histpick-widget() {
  local selected
  selected="$(%[1]s -- "$LBUFFER" </dev/tty)" || return
  if [[ -n $selected ]]; then
    BUFFER=$selected
    CURSOR=${#BUFFER}
  fi
  zle reset-prompt
}
zle -N histpick-widget
bindkey '%[2]s' histpick-widget
`

const bashWidget = `# histpick: add to ~/.bashrc with  eval "$(%[1]s init bash)"
__histpick_widget() {
  local selected
  history -a
  selected="$(HISTFILE="${HISTFILE:-$HOME/.bash_history}" %[1]s --decoder utf8 --lossy -- "$READLINE_LINE" </dev/tty)" || return
  if [[ -n $selected ]]; then
    READLINE_LINE=$selected
    READLINE_POINT=${#READLINE_LINE}
  fi
}
bind -x '"%[2]s": __histpick_widget'
`

var shellWidgets = map[string]struct {
	script     string
	defaultKey string
}{
	"zsh":  {script: zshWidget, defaultKey: "^R"},
	"bash": {script: bashWidget, defaultKey: `\C-r`},
}

func newInitCmd(_ *rootOptions) *cobra.Command {
	var key string
	var bin string

	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Print a shell widget that inserts the picked command at the prompt",
		Args:      cobra.ExactArgs(1),
		ValidArgs: supportedShells(),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := renderWidget(args[0], bin, key)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Key binding for the widget (default: Ctrl+R)")
	cmd.Flags().StringVar(&bin, "bin", "histpick", "Command used to start the picker")
	return cmd
}

func renderWidget(shell, bin, key string) (string, error) {
	w, ok := shellWidgets[strings.ToLower(strings.TrimSpace(shell))]
	if !ok {
		err := errors.Newf("unsupported shell %q", shell)
		return "", errors.WithHintf(err, "supported shells: %s", strings.Join(supportedShells(), ", "))
	}
	if strings.TrimSpace(bin) == "" {
		bin = "histpick"
	}
	if strings.TrimSpace(key) == "" {
		key = w.defaultKey
	}
	return fmt.Sprintf(w.script, bin, key), nil
}

func supportedShells() []string {
	out := make([]string, 0, len(shellWidgets))
	for name := range shellWidgets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
