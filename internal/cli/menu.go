package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/wtm/internal/model"
	"github.com/shinji-kodama/wtm/internal/workspace"
)

// Menu action labels, in display order.
const (
	menuClone       = "Clone a repository"
	menuBranch      = "Create a branch"
	menuList        = "List worktrees"
	menuRemove      = "Remove a worktree"
	menuOpenRemote  = "Open a remote branch"
	menuListRemotes = "List remote branches"
	menuHelp        = "Help"
	menuQuit        = "Quit"
)

// NewMenuCommand creates the "menu" command: an interactive, prompt-
// driven frontend over the same lifecycle operations as the batch
// commands. Every menu action maps 1:1 to a Manager operation.
func NewMenuCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu over all worktree operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(app)
		},
	}
}

func runMenu(app *App) error {
	for {
		sel := promptui.Select{
			Label: "wtm",
			Items: []string{
				menuClone, menuBranch, menuList, menuRemove,
				menuOpenRemote, menuListRemotes, menuHelp, menuQuit,
			},
			Size: 8,
		}

		_, choice, err := sel.Run()
		if err != nil {
			return cancelOr(err)
		}

		var actionErr error
		switch choice {
		case menuClone:
			actionErr = menuRunClone(app)
		case menuBranch:
			actionErr = menuRunBranch(app)
		case menuList:
			actionErr = menuRunList(app)
		case menuRemove:
			actionErr = menuRunRemove(app)
		case menuOpenRemote:
			actionErr = menuRunOpenRemote(app)
		case menuListRemotes:
			actionErr = menuRunListRemotes(app)
		case menuHelp:
			printMenuHelp(app)
		case menuQuit:
			return nil
		}

		if actionErr != nil {
			if model.CodeOf(actionErr) == model.ExitUserCancelled {
				return actionErr
			}
			// Other failures are shown and the menu continues, so one
			// failed removal doesn't end the whole session.
			fmt.Fprintf(app.Stderr, "Error: %v\n", actionErr)
		}
	}
}

// cancelOr translates promptui's interrupt/EOF sentinels into the
// user-cancelled error kind; anything else passes through.
func cancelOr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return model.NewCLIError(model.ExitUserCancelled, "cancelled")
	}
	return err
}

func promptText(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("value must not be empty")
			}
			return nil
		},
	}
	value, err := p.Run()
	if err != nil {
		return "", cancelOr(err)
	}
	return value, nil
}

// selectWorkspace lets the user pick one of the workspaces under the
// base directory.
func selectWorkspace(app *App) (string, error) {
	base := app.EffectiveBaseDir()

	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("no workspaces under %s: %w", base, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(base, entry.Name(), workspace.BareDirName)); err == nil {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no workspaces under %s, clone one first", base)
	}
	sort.Strings(names)

	sel := promptui.Select{Label: "Repository", Items: names, Size: 10}
	_, name, err := sel.Run()
	if err != nil {
		return "", cancelOr(err)
	}
	return name, nil
}

func menuRunClone(app *App) error {
	url, err := promptText("Repository URL")
	if err != nil {
		return err
	}
	return runClone(app, url)
}

func menuRunBranch(app *App) error {
	repo, err := selectWorkspace(app)
	if err != nil {
		return err
	}
	name, err := promptText("Branch name")
	if err != nil {
		return err
	}

	base := promptui.Prompt{Label: "Base branch (empty for default)"}
	baseBranch, err := base.Run()
	if err != nil {
		return cancelOr(err)
	}

	return runBranch(app, repo, name, &branchFlags{base: baseBranch, pull: true})
}

func menuRunList(app *App) error {
	repo, err := selectWorkspace(app)
	if err != nil {
		return err
	}
	return runListWorktrees(app, repo)
}

func menuRunRemove(app *App) error {
	repo, err := selectWorkspace(app)
	if err != nil {
		return err
	}
	name, err := promptText("Branch name")
	if err != nil {
		return err
	}

	err = app.Manager(repo).RemoveWorktree(name, false)
	if model.CodeOf(err) == model.ExitWorktreeDirty {
		confirm := promptui.Prompt{
			Label:     "Worktree has uncommitted changes, remove anyway",
			IsConfirm: true,
		}
		if _, confirmErr := confirm.Run(); confirmErr != nil {
			// promptui reports a declined confirm as ErrAbort; treat it
			// as "leave the worktree alone".
			if errors.Is(confirmErr, promptui.ErrAbort) {
				return nil
			}
			return cancelOr(confirmErr)
		}
		err = app.Manager(repo).RemoveWorktree(name, true)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Stdout, "Removed worktree %s\n", app.Manager(repo).WorktreeDir(name))
	return nil
}

func menuRunOpenRemote(app *App) error {
	repo, err := selectWorkspace(app)
	if err != nil {
		return err
	}

	m := app.Manager(repo)
	branches, err := m.ListRemoteBranches()
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		return fmt.Errorf("remote has no branches")
	}

	sel := promptui.Select{Label: "Remote branch", Items: branches, Size: 10}
	_, branch, err := sel.Run()
	if err != nil {
		return cancelOr(err)
	}

	if err := m.OpenRemoteBranch(branch); err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "Worktree ready at %s\n", m.WorktreeDir(branch))
	return nil
}

func menuRunListRemotes(app *App) error {
	repo, err := selectWorkspace(app)
	if err != nil {
		return err
	}

	branches, err := app.Manager(repo).ListRemoteBranches()
	if err != nil {
		return err
	}
	for _, branch := range branches {
		fmt.Fprintln(app.Stdout, branch)
	}
	return nil
}

func printMenuHelp(app *App) {
	fmt.Fprintf(app.Stdout, `wtm keeps one bare clone per repository under %s and checks each
branch out into its own directory.

  %-24s clone a repository and its default branch
  %-24s create a branch rooted at the remote's latest state
  %-24s show every worktree of a repository
  %-24s remove a branch's worktree (confirms if dirty)
  %-24s check an existing remote branch out locally
  %-24s show the branches on the remote
`, app.EffectiveBaseDir(),
		menuClone, menuBranch, menuList, menuRemove, menuOpenRemote, menuListRemotes)
}
