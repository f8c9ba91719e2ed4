package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/wtm/internal/workspace"
)

// NewCloneCommand creates the "clone" command. It sets up a complete
// workspace: bare clone, persisted config, and an initial worktree for
// the remote's default branch.
func NewCloneCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url>",
		Short: "Clone a repository into a new bare-repo workspace",
		Long: `Clone a repository as a bare clone under <base>/<repo>/.bare, resolve
the remote's default branch, record it in .worktree.json, and check the
default branch out into its own worktree directory.

Cloning never overwrites: if the workspace directory already exists the
command fails and the existing content is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(app, args[0])
		},
	}
}

func runClone(app *App, url string) error {
	repoName, err := workspace.RepoNameFromURL(url)
	if err != nil {
		return err
	}
	app.VerboseLog("repository name: %s", repoName)

	m := app.Manager(repoName)
	app.VerboseLog("cloning into %s", m.Dir())
	if err := m.Clone(url); err != nil {
		return err
	}

	branch, _ := m.Store().DefaultBranch()

	if app.jsonOutput {
		result := map[string]string{
			"name":          repoName,
			"path":          m.Dir(),
			"defaultBranch": branch,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(app.Stdout, string(data))
		return nil
	}

	fmt.Fprintf(app.Stdout, "Cloned %s into %s\n", repoName, m.Dir())
	fmt.Fprintf(app.Stdout, "  Default branch: %s\n", branch)
	fmt.Fprintf(app.Stdout, "  Worktree:       %s\n", m.WorktreeDir(branch))
	return nil
}
