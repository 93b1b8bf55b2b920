package cli

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/baaaaaaaka/histpick/internal/picker"
	"github.com/baaaaaaaka/histpick/internal/tui"
)

type terminal interface {
	picker.Renderer
	picker.EventSource
	Close()
}

var openTerminal = func(opts tui.Options) (terminal, error) {
	return tui.Open(opts)
}

func runPicker(cmd *cobra.Command, root *rootOptions, query string) error {
	lines, err := loadHistory(cmd, root)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	screen, err := openTerminal(tui.Options{Version: version})
	if err != nil {
		return err
	}
	res, err := picker.NewController(lines, query).Run(ctx, screen, screen)
	screen.Close()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	root.log().Debug("picker finished", "committed", res.Committed, "command", res.Command)
	if !res.Committed {
		return nil
	}
	return printSelection(cmd.OutOrStdout(), res.Command)
}

// printSelection writes the chosen command. A trailing newline is added
// only for interactive output so shell substitutions get the bare text.
func printSelection(w io.Writer, command string) error {
	if command == "" {
		return nil
	}
	if isTerminal(w) {
		command += "\n"
	}
	if _, err := io.WriteString(w, command); err != nil {
		return errors.Wrap(err, "write selection")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
