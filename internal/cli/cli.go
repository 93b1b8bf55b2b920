package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/histpick/internal/history"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath string
	histFile   string
	decoder    string
	encoding   string
	lossy      bool
	debug      bool

	logger *slog.Logger
}

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "histpick [query]",
		Short:         "Search shell history interactively and print the chosen command",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       buildVersion(),
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefaultPicker(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	flags.StringVar(&opts.histFile, "histfile", "", "History file to read (default: $HISTFILE, then ~/.zsh_history)")
	flags.StringVar(&opts.decoder, "decoder", "", "History decoder: "+strings.Join(history.DecoderNames(), ", ")+" (default: meta)")
	flags.StringVar(&opts.encoding, "encoding", "", "Code page for the charmap decoder (default: iso-8859-1)")
	flags.BoolVar(&opts.lossy, "lossy", false, "Replace invalid UTF-8 instead of failing (utf8 decoder)")
	flags.BoolVar(&opts.debug, "debug", false, "Log debug details to stderr")

	cmd.AddCommand(
		newListCmd(opts),
		newConfigCmd(opts),
		newInitCmd(opts),
	)

	return cmd
}

// printError writes err and any hints attached to it.
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		_, _ = fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
