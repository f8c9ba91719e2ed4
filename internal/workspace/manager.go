package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shinji-kodama/wtm/internal/gitcmd"
	"github.com/shinji-kodama/wtm/internal/model"
)

// BareDirName is the subdirectory holding the bare clone inside a
// workspace. It is created once, at clone time, and never checked out.
const BareDirName = ".bare"

// originFetchRefspec is written into the bare clone's config so later
// explicit fetches update remote-tracking refs. A plain `git clone --bare`
// leaves no fetch refspec at all, which would make origin/<branch> refs
// impossible to keep current.
const originFetchRefspec = "+refs/heads/*:refs/remotes/origin/*"

// Manager orchestrates the worktree lifecycle for one workspace. Every
// operation is synchronous: git commands are issued one at a time and
// each must complete before the next is started. Managers for different
// workspaces are independent and safe to use concurrently; two Managers
// for the same workspace are not coordinated beyond git's own locking.
type Manager struct {
	baseDir       string
	repoName      string
	defaultBranch string
	runner        gitcmd.Runner
	store         *ConfigStore

	// Logf receives warnings and informational output for soft-failure
	// paths (a failed optional fetch, the available-branches listing).
	// Defaults to stderr.
	Logf func(format string, args ...any)
}

// NewManager creates a Manager for the workspace <baseDir>/<repoName>.
// defaultBranch is the static fallback used when neither an explicit
// base nor a stored config default is available; it is passed in rather
// than read from a global so tests can vary it per case.
func NewManager(baseDir, repoName, defaultBranch string, runner gitcmd.Runner) *Manager {
	return &Manager{
		baseDir:       baseDir,
		repoName:      repoName,
		defaultBranch: defaultBranch,
		runner:        runner,
		store:         NewConfigStore(filepath.Join(baseDir, repoName)),
		Logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// Dir returns the workspace root directory.
func (m *Manager) Dir() string {
	return filepath.Join(m.baseDir, m.repoName)
}

// BareDir returns the bare storage directory.
func (m *Manager) BareDir() string {
	return filepath.Join(m.Dir(), BareDirName)
}

// WorktreeDir returns the directory a branch's worktree lives in. The
// branch name is used verbatim — a branch containing a path separator
// produces a nested directory, a known limitation of the layout.
func (m *Manager) WorktreeDir(branch string) string {
	return filepath.Join(m.Dir(), branch)
}

// Store returns the workspace's configuration store.
func (m *Manager) Store() *ConfigStore {
	return m.store
}

// requireRepository checks the bare storage is present. Directory
// presence is the state check here, as everywhere else in this package:
// git is only consulted for the authoritative listing.
func (m *Manager) requireRepository() error {
	if _, err := os.Stat(m.BareDir()); err != nil {
		return model.NewCLIError(model.ExitRepositoryNotFound,
			fmt.Sprintf("repository not found: %s does not exist (clone it first)", m.BareDir()))
	}
	return nil
}

// Clone creates a new workspace for url: a bare clone under .bare, a
// persisted config recording the remote's resolved default branch, and
// an initial worktree for that branch.
//
// Clone is not idempotent and never overwrites. A failure partway
// through leaves the partially created workspace on disk; a retried
// clone then fails with workspace-already-exists and the directory must
// be removed manually.
func (m *Manager) Clone(url string) error {
	if err := os.MkdirAll(m.baseDir, 0755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "clone failed", err)
	}

	if _, err := os.Stat(m.Dir()); err == nil {
		return model.NewCLIError(model.ExitWorkspaceExists,
			fmt.Sprintf("workspace already exists: %s", m.Dir()))
	}

	if err := os.MkdirAll(m.Dir(), 0755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "clone failed", err)
	}

	if _, _, err := m.runner.Run("", "clone", "--bare", url, m.BareDir()); err != nil {
		return model.WrapCLIError(model.ExitGitError, "clone failed", err)
	}

	// Bare clones carry no fetch refspec; set one so explicit fetches
	// update origin/* remote-tracking refs.
	if _, _, err := m.runner.Run(m.BareDir(), "config", "remote.origin.fetch", originFetchRefspec); err != nil {
		return model.WrapCLIError(model.ExitGitError, "clone failed", err)
	}

	branch := m.resolveRemoteDefaultBranch()

	if err := m.store.Save(Config{DefaultBranch: branch, RepositoryURL: url}); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "clone failed", err)
	}

	// The bare clone copied refs/heads/*, so the default branch already
	// exists locally and can be checked out directly.
	if _, _, err := m.runner.Run(m.BareDir(), "worktree", "add", m.WorktreeDir(branch), branch); err != nil {
		return model.WrapCLIError(model.ExitGitError, "clone failed", err)
	}

	return nil
}

// resolveRemoteDefaultBranch determines the remote's real default branch
// using a three-tier fallback. Each tier is attempted only if the
// previous one failed; the result of a succeeding tier is trusted as-is.
//
//  1. Ask the remote for its symbolic HEAD target.
//  2. List the remote's branches and prefer main, then master.
//  3. Fall back to the statically configured default.
func (m *Manager) resolveRemoteDefaultBranch() string {
	if branch, err := m.remoteHeadBranch(); err == nil && branch != "" {
		return branch
	}

	if branches, err := m.remoteBranchNames(); err == nil {
		for _, preferred := range []string{"main", "master"} {
			for _, b := range branches {
				if b == preferred {
					return preferred
				}
			}
		}
	}

	return m.defaultBranch
}

// remoteHeadBranch queries the remote's symbolic HEAD via
// `git ls-remote --symref origin HEAD`, whose first line looks like:
//
//	ref: refs/heads/main	HEAD
func (m *Manager) remoteHeadBranch() (string, error) {
	stdout, _, err := m.runner.Run(m.BareDir(), "ls-remote", "--symref", "origin", "HEAD")
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(stdout, "\n") {
		if !strings.HasPrefix(line, "ref:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.HasPrefix(fields[1], "refs/heads/") {
			return strings.TrimPrefix(fields[1], "refs/heads/"), nil
		}
	}

	return "", fmt.Errorf("no symref line in ls-remote output")
}

// remoteBranchNames queries the remote's branch refs directly, bypassing
// local remote-tracking refs so the answer cannot be stale. Names are
// deduplicated and returned in lexicographic order.
func (m *Manager) remoteBranchNames() ([]string, error) {
	stdout, _, err := m.runner.Run(m.BareDir(), "ls-remote", "--heads", "origin")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var names []string
	for _, line := range strings.Split(stdout, "\n") {
		// Each line is "<sha>\trefs/heads/<name>".
		idx := strings.Index(line, "refs/heads/")
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[idx+len("refs/heads/"):])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// CreateBranch creates a new branch and worktree rooted at the latest
// fetched state of the base branch. The base is resolved in priority
// order: the explicit argument, the stored config default, the static
// default the Manager was constructed with.
//
// When pullLatest is set, a full fetch from origin is attempted first;
// its failure is a warning, not an error — the operation proceeds with
// whatever refs are already present.
func (m *Manager) CreateBranch(branchName, baseBranch string, pullLatest bool) error {
	if err := m.requireRepository(); err != nil {
		return err
	}

	dir := m.WorktreeDir(branchName)
	if _, err := os.Stat(dir); err == nil {
		return model.NewCLIError(model.ExitWorktreeExists,
			fmt.Sprintf("worktree already exists: %s", dir))
	}

	base := m.resolveBaseBranch(baseBranch)

	if pullLatest {
		if _, _, err := m.runner.Run(m.BareDir(), "fetch", "origin"); err != nil {
			m.Logf("warning: fetch failed, continuing with local refs: %v", err)
		}
	}

	// Fetch the base branch explicitly so origin/<base> reflects the
	// remote's current state, then root the new branch there — never at
	// a possibly stale local branch of the same name.
	if _, _, err := m.runner.Run(m.BareDir(), "fetch", "origin", base); err != nil {
		return model.WrapCLIError(model.ExitGitError, "branch creation failed", err)
	}

	if _, _, err := m.runner.Run(m.BareDir(), "worktree", "add", "-b", branchName, dir, "origin/"+base); err != nil {
		return model.WrapCLIError(model.ExitGitError, "branch creation failed", err)
	}

	return nil
}

// resolveBaseBranch applies the base-branch priority order.
func (m *Manager) resolveBaseBranch(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if stored, ok := m.store.DefaultBranch(); ok {
		return stored
	}
	return m.defaultBranch
}

// ListWorktrees returns one "<path> (<branch>)" line per worktree, in
// git's own output order. Detached worktrees are labeled "detached";
// the bare storage entry git includes in the listing is skipped.
func (m *Manager) ListWorktrees() ([]string, error) {
	if err := m.requireRepository(); err != nil {
		return nil, err
	}

	stdout, _, err := m.runner.Run(m.BareDir(), "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, wt := range parsePorcelainOutput(stdout) {
		if wt.IsBare {
			continue
		}
		lines = append(lines, wt.String())
	}
	return lines, nil
}

// RemoveWorktree removes the worktree for branchName. Without force, git
// refuses to remove a worktree with uncommitted or untracked content;
// that refusal is surfaced as a distinct dirty-worktree error directing
// the caller to retry with force. The Manager never escalates on its own.
func (m *Manager) RemoveWorktree(branchName string, force bool) error {
	if err := m.requireRepository(); err != nil {
		return err
	}

	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, m.WorktreeDir(branchName))

	if _, stderr, err := m.runner.Run(m.BareDir(), args...); err != nil {
		if !force && isDirtyWorktreeError(stderr) {
			return model.WrapCLIError(model.ExitWorktreeDirty,
				fmt.Sprintf("worktree %q has uncommitted changes, retry with --force", branchName), err)
		}
		return model.WrapCLIError(model.ExitGitError,
			fmt.Sprintf("failed to remove worktree %q", branchName), err)
	}

	return nil
}

// ListRemoteBranches fetches and prunes all remote refs, then returns
// the remote's branch names, deduplicated and in lexicographic order.
func (m *Manager) ListRemoteBranches() ([]string, error) {
	if err := m.requireRepository(); err != nil {
		return nil, err
	}

	if _, _, err := m.runner.Run(m.BareDir(), "fetch", "--all", "--prune"); err != nil {
		return nil, model.WrapCLIError(model.ExitGitError, "failed to fetch remote branches", err)
	}

	names, err := m.remoteBranchNames()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGitError, "failed to list remote branches", err)
	}
	return names, nil
}

// OpenRemoteBranch creates a worktree tracking an existing remote
// branch. If a worktree directory for the branch already exists the
// operation is a successful no-op. If worktree creation fails because a
// same-named local branch already exists, the worktree is bound to that
// local branch instead; whether the existing branch actually tracks the
// intended remote branch is not verified.
func (m *Manager) OpenRemoteBranch(branchName string) error {
	dir := m.WorktreeDir(branchName)
	if _, err := os.Stat(dir); err == nil {
		return nil
	}

	if err := m.requireRepository(); err != nil {
		return err
	}

	if _, _, err := m.runner.Run(m.BareDir(), "fetch", "--all"); err != nil {
		return model.WrapCLIError(model.ExitGitError, "failed to fetch remote refs", err)
	}

	branches, err := m.remoteBranchNames()
	if err != nil {
		return model.WrapCLIError(model.ExitGitError, "failed to list remote branches", err)
	}
	if !contains(branches, branchName) {
		m.Logf("available remote branches: %s", strings.Join(branches, ", "))
		return model.NewCLIError(model.ExitRemoteBranchNotFound,
			fmt.Sprintf("remote branch not found: %s", branchName))
	}

	_, stderr, err := m.runner.Run(m.BareDir(), "worktree", "add", "--track", "-b", branchName, dir, "origin/"+branchName)
	if err != nil {
		if strings.Contains(stderr, "already exists") {
			// A local branch of this name is already present; bind the
			// worktree to it rather than creating a new branch.
			if _, _, retryErr := m.runner.Run(m.BareDir(), "worktree", "add", dir, branchName); retryErr != nil {
				return model.WrapCLIError(model.ExitGitError,
					fmt.Sprintf("failed to open remote branch %q", branchName), retryErr)
			}
			return nil
		}
		return model.WrapCLIError(model.ExitGitError,
			fmt.Sprintf("failed to open remote branch %q", branchName), err)
	}

	return nil
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
