package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the "remove" command. Removal of a dirty
// worktree is refused with a distinct error; the caller escalates with
// --force explicitly rather than the tool escalating on its own.
func NewRemoveCommand(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <repo> <name>",
		Short: "Remove a branch's worktree",
		Long: `Remove the worktree directory for a branch. The branch itself is kept
in the bare repository.

A worktree with uncommitted or untracked changes is not removed unless
--force is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := app.Manager(args[0])
			if err := m.RemoveWorktree(args[1], force); err != nil {
				return err
			}
			fmt.Fprintf(app.Stdout, "Removed worktree %s\n", m.WorktreeDir(args[1]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even if the worktree has uncommitted changes")

	return cmd
}
