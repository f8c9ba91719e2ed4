package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemotesCommand creates the "remotes" command, listing the branches
// that exist on the remote. The remote is queried directly rather than
// through local tracking refs, so the answer cannot be stale.
func NewRemotesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remotes <repo>",
		Short: "List the remote's branches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := app.Manager(args[0])

			branches, err := m.ListRemoteBranches()
			if err != nil {
				return err
			}

			if app.jsonOutput {
				if branches == nil {
					branches = []string{}
				}
				data, _ := json.MarshalIndent(map[string][]string{"branches": branches}, "", "  ")
				fmt.Fprintln(app.Stdout, string(data))
				return nil
			}

			for _, branch := range branches {
				fmt.Fprintln(app.Stdout, branch)
			}
			return nil
		},
	}
}
