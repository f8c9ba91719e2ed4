package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"4d63.com/testcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGit isolates git from the developer's environment: HOME is
// pointed at a temp dir and a minimal global config is written there.
// The default branch is deliberately not "main" so the tests catch any
// code path that falls back to the static default instead of resolving
// the remote's real HEAD.
func setupGit(t *testing.T) {
	dir := testcli.MkdirTemp(t)
	os.Setenv("HOME", dir)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	testcli.Exec(t, "git config --global user.email 'tests@example.com'")
	testcli.Exec(t, "git config --global user.name 'Tests'")
	testcli.Exec(t, "git config --global init.defaultBranch develop")
}

// setupRemote creates a seed repository and bare-clones it into
// project.git, returning the bare path used as the clone URL.
func setupRemote(t *testing.T) string {
	seed := testcli.MkdirTemp(t)
	testcli.Chdir(t, seed)
	testcli.Exec(t, "git init")
	testcli.WriteFile(t, "README.md", []byte("# project\n"))
	testcli.Exec(t, "git add .")
	testcli.Exec(t, "git commit -m 'initial commit'")

	remote := filepath.Join(testcli.MkdirTemp(t), "project.git")
	testcli.Exec(t, "git clone --bare . "+remote)
	return remote
}

func TestCloneInvalidURL(t *testing.T) {
	setupGit(t)
	base := testcli.MkdirTemp(t)

	args := []string{"wtm", "--base-dir", base, "clone", "https://example.com/"}
	exitCode, stdout, stderr := testcli.Main(t, args, nil, Run)
	assert.Equal(t, 7, exitCode)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid repository URL")
}

func TestListNoWorkspaces(t *testing.T) {
	setupGit(t)
	base := testcli.MkdirTemp(t)

	args := []string{"wtm", "--base-dir", base, "list"}
	exitCode, stdout, stderr := testcli.Main(t, args, nil, Run)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestLifecycle(t *testing.T) {
	setupGit(t)
	remote := setupRemote(t)
	base := testcli.MkdirTemp(t)

	// Clone: resolves the remote's default branch (develop) and checks
	// it out into its own worktree.
	exitCode, stdout, _ := testcli.Main(t, []string{"wtm", "--base-dir", base, "clone", remote}, nil, Run)
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, "Cloned project")
	assert.Contains(t, stdout, "Default branch: develop")
	assert.DirExists(t, filepath.Join(base, "project", ".bare"))
	assert.DirExists(t, filepath.Join(base, "project", "develop"))

	// Cloning again refuses with the workspace-exists exit code.
	exitCode, _, stderr := testcli.Main(t, []string{"wtm", "--base-dir", base, "clone", remote}, nil, Run)
	assert.Equal(t, 3, exitCode)
	assert.Contains(t, stderr, "workspace already exists")

	// The bare list mode shows the workspace.
	exitCode, stdout, _ = testcli.Main(t, []string{"wtm", "--base-dir", base, "list"}, nil, Run)
	require.Equal(t, 0, exitCode)
	assert.Equal(t, "project\n", stdout)

	// Branch: a new worktree based on the stored default branch.
	exitCode, stdout, _ = testcli.Main(t, []string{"wtm", "--base-dir", base, "branch", "project", "feature-auth"}, nil, Run)
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, "Created worktree")
	assert.DirExists(t, filepath.Join(base, "project", "feature-auth"))

	// List worktrees: both branches, in git's order.
	exitCode, stdout, _ = testcli.Main(t, []string{"wtm", "--base-dir", base, "list", "project"}, nil, Run)
	require.Equal(t, 0, exitCode)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "(develop)")
	assert.Contains(t, lines[1], "(feature-auth)")

	// Remotes: the remote's branches.
	exitCode, stdout, _ = testcli.Main(t, []string{"wtm", "--base-dir", base, "remotes", "project"}, nil, Run)
	require.Equal(t, 0, exitCode)
	assert.Equal(t, "develop\n", stdout)

	// Dirty removal is refused, forced removal succeeds.
	scratch := filepath.Join(base, "project", "feature-auth", "scratch.txt")
	require.NoError(t, os.WriteFile(scratch, []byte("wip"), 0644))

	exitCode, _, stderr = testcli.Main(t, []string{"wtm", "--base-dir", base, "remove", "project", "feature-auth"}, nil, Run)
	assert.Equal(t, 6, exitCode)
	assert.Contains(t, stderr, "--force")

	exitCode, _, _ = testcli.Main(t, []string{"wtm", "--base-dir", base, "remove", "project", "feature-auth", "--force"}, nil, Run)
	require.Equal(t, 0, exitCode)
	assert.NoDirExists(t, filepath.Join(base, "project", "feature-auth"))
}

func TestRemoveMissingRepository(t *testing.T) {
	setupGit(t)
	base := testcli.MkdirTemp(t)

	args := []string{"wtm", "--base-dir", base, "remove", "project", "feature"}
	exitCode, _, stderr := testcli.Main(t, args, nil, Run)
	assert.Equal(t, 4, exitCode)
	assert.Contains(t, stderr, "repository not found")
}
