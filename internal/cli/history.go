package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/histpick/internal/history"
)

type listPayload struct {
	Query    string   `json:"query"`
	Commands []string `json:"commands"`
}

func newListCmd(root *rootOptions) *cobra.Command {
	var limit int
	var asJSON bool
	var pretty bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print matching commands, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.Newf("invalid --limit %d (must be >= 0)", limit)
			}
			lines, err := loadHistory(cmd, root)
			if err != nil {
				return err
			}
			query := initialQuery(args)
			commands := history.Filter(lines, query)
			if limit > 0 && len(commands) > limit {
				commands = commands[:limit]
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				for _, c := range commands {
					_, _ = fmt.Fprintln(out, c)
				}
				return nil
			}

			payload := listPayload{Query: query, Commands: commands}
			var b []byte
			if pretty {
				b, err = json.MarshalIndent(payload, "", "  ")
			} else {
				b, err = json.Marshal(payload)
			}
			if err != nil {
				return errors.Wrap(err, "marshal commands")
			}
			_, _ = fmt.Fprintln(out, string(b))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most N commands (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON object instead of plain lines")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON")
	return cmd
}
