package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/wtm/internal/editor"
)

// branchFlags holds the flag values for the branch command.
type branchFlags struct {
	base string // --base: explicit base branch
	pull bool   // --pull: fetch from origin before branching
	open bool   // --open: launch the editor on the new worktree
}

// NewBranchCommand creates the "branch" command. The new branch is
// rooted at the freshly fetched remote-tracking ref of its base branch,
// so it starts from the remote's current state rather than stale local
// history.
func NewBranchCommand(app *App) *cobra.Command {
	flags := &branchFlags{}

	cmd := &cobra.Command{
		Use:   "branch <repo> <name>",
		Short: "Create a new branch with its own worktree",
		Long: `Create a new branch and check it out into <base>/<repo>/<name>.

The base branch is resolved in priority order: the --base flag, the
default branch recorded in .worktree.json, the configured fallback.

Examples:
  wtm branch project feature-auth
  wtm branch project bugfix-login --base develop
  wtm branch project feature-auth --pull --open`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranch(app, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVar(&flags.base, "base", "", "Base branch (default: workspace default branch)")
	cmd.Flags().BoolVar(&flags.pull, "pull", false, "Fetch from origin before branching (failure is non-fatal)")
	cmd.Flags().BoolVar(&flags.open, "open", false, "Open the new worktree in the configured editor")

	return cmd
}

func runBranch(app *App, repoName, branchName string, flags *branchFlags) error {
	m := app.Manager(repoName)

	if err := m.CreateBranch(branchName, flags.base, flags.pull); err != nil {
		return err
	}

	dir := m.WorktreeDir(branchName)
	fmt.Fprintf(app.Stdout, "Created worktree %s\n", dir)

	if flags.open {
		// Editor launch is best effort: the worktree was created, so a
		// launch failure is only a warning.
		launcher := editor.NewLauncher(app.Config.Editor)
		if err := launcher.Open(dir); err != nil {
			fmt.Fprintf(app.Stderr, "warning: %v\n", err)
		}
	}

	return nil
}
