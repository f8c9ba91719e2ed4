package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/wtm/internal/workspace"
)

// NewListCommand creates the "list" command. With a repository argument
// it lists that workspace's worktrees; without one it lists the
// workspaces under the base directory.
func NewListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [repo]",
		Short: "List workspaces, or the worktrees of one workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runListWorkspaces(app)
			}
			return runListWorktrees(app, args[0])
		},
	}
}

func runListWorktrees(app *App, repoName string) error {
	m := app.Manager(repoName)

	lines, err := m.ListWorktrees()
	if err != nil {
		return err
	}

	if app.jsonOutput {
		if lines == nil {
			lines = []string{}
		}
		data, _ := json.MarshalIndent(map[string][]string{"worktrees": lines}, "", "  ")
		fmt.Fprintln(app.Stdout, string(data))
		return nil
	}

	for _, line := range lines {
		fmt.Fprintln(app.Stdout, line)
	}
	return nil
}

// runListWorkspaces scans the base directory for workspace directories,
// recognized by the presence of a .bare subdirectory.
func runListWorkspaces(app *App) error {
	base := app.EffectiveBaseDir()

	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			// No base directory yet means no workspaces, not an error.
			entries = nil
		} else {
			return fmt.Errorf("reading %s: %w", base, err)
		}
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bare := filepath.Join(base, entry.Name(), workspace.BareDirName)
		if info, err := os.Stat(bare); err == nil && info.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if app.jsonOutput {
		if names == nil {
			names = []string{}
		}
		data, _ := json.MarshalIndent(map[string][]string{"workspaces": names}, "", "  ")
		fmt.Fprintln(app.Stdout, string(data))
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(app.Stdout, name)
	}
	return nil
}
