package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/wtm/internal/editor"
)

// NewOpenCommand creates the "open" command: adopt a branch that exists
// on the remote into a local worktree.
func NewOpenCommand(app *App) *cobra.Command {
	var openEditor bool

	cmd := &cobra.Command{
		Use:   "open <repo> <branch>",
		Short: "Check a remote branch out into a worktree",
		Long: `Create a worktree tracking a branch that already exists on the remote.

If a worktree for the branch already exists the command succeeds without
doing anything. If a same-named local branch exists, the worktree is
bound to it instead of creating a new branch.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := app.Manager(args[0])

			if err := m.OpenRemoteBranch(args[1]); err != nil {
				return err
			}

			dir := m.WorktreeDir(args[1])
			fmt.Fprintf(app.Stdout, "Worktree ready at %s\n", dir)

			if openEditor {
				launcher := editor.NewLauncher(app.Config.Editor)
				if err := launcher.Open(dir); err != nil {
					fmt.Fprintf(app.Stderr, "warning: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&openEditor, "open", false, "Open the worktree in the configured editor")

	return cmd
}
