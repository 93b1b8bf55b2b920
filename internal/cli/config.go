package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/histpick/internal/config"
	"github.com/baaaaaaaka/histpick/internal/history"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change saved defaults",
	}
	cmd.AddCommand(
		newConfigShowCmd(root),
		newConfigSetCmd(root),
		newConfigPathCmd(root),
	)
	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print saved and effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			cfg, err := store.Load()
			if err != nil {
				return err
			}
			eff, err := resolveSettingsFrom(cmd, root, cfg)
			if err != nil {
				return err
			}

			effective := map[string][2]string{
				config.KeyHistFile: {eff.histFile, eff.histFileSource},
				config.KeyDecoder:  {eff.decoder, eff.decoderSource},
				config.KeyEncoding: {eff.encoding, eff.encodingSource},
				config.KeyLossy:    {fmt.Sprint(eff.lossy), eff.lossySource},
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "KEY\tSAVED\tEFFECTIVE\tSOURCE")
			for _, key := range config.Keys() {
				saved, _ := cfg.Get(key)
				if saved == "" {
					saved = "-"
				}
				e := effective[key]
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, saved, e[0], e[1])
			}
			return w.Flush()
		},
	}
}

func newConfigSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Save a default (omit the value to clear it)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			if err := store.Update(func(cfg *config.Config) error {
				if err := cfg.Set(args[0], value); err != nil {
					return err
				}
				return validateConfig(*cfg)
			}); err != nil {
				return err
			}
			root.log().Debug("saved config", "path", store.Path(), "key", args[0], "value", value)
			return nil
		},
	}
}

func newConfigPathCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}

// validateConfig rejects decoder and encoding names that would fail at
// the next start.
func validateConfig(cfg config.Config) error {
	if cfg.Decoder != "" {
		if _, err := history.NewDecoder(cfg.Decoder, history.DecoderOptions{}); err != nil {
			return err
		}
	}
	if cfg.Encoding != "" {
		if _, err := history.LookupEncoding(cfg.Encoding); err != nil {
			return err
		}
	}
	return nil
}
