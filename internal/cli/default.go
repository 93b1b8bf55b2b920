package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func runDefaultPicker(cmd *cobra.Command, root *rootOptions, args []string) error {
	return runPicker(cmd, root, initialQuery(args))
}

// initialQuery joins positional args so `histpick git push` and
// `histpick "git push"` start with the same query. Use `--` before a
// query that starts with a dash or names a subcommand.
func initialQuery(args []string) string {
	return strings.Join(args, " ")
}
