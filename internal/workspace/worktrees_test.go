package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// porcelainFixture is realistic `git worktree list --porcelain` output:
// the bare entry, two attached worktrees, and one detached worktree.
const porcelainFixture = `worktree /work/project/.bare
bare

worktree /work/project/main
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /work/project/feature-auth
HEAD 2222222222222222222222222222222222222222
branch refs/heads/feature-auth

worktree /work/project/experiment
HEAD 3333333333333333333333333333333333333333
detached
`

func TestParsePorcelainOutput(t *testing.T) {
	worktrees := parsePorcelainOutput(porcelainFixture)
	require.Len(t, worktrees, 4)

	assert.True(t, worktrees[0].IsBare)
	assert.Equal(t, "/work/project/.bare", worktrees[0].Path)

	assert.Equal(t, "refs/heads/main", worktrees[1].Branch)
	assert.Equal(t, "1111111111111111111111111111111111111111", worktrees[1].HEAD)

	assert.Equal(t, "feature-auth", worktrees[2].BranchName())

	// The detached entry has no branch line at all.
	assert.Empty(t, worktrees[3].Branch)
	assert.Equal(t, DetachedLabel, worktrees[3].BranchName())
}

func TestParsePorcelainOutputNoTrailingBlankLine(t *testing.T) {
	output := "worktree /work/project/main\nHEAD abc\nbranch refs/heads/main"
	worktrees := parsePorcelainOutput(output)
	require.Len(t, worktrees, 1)
	assert.Equal(t, "main", worktrees[0].BranchName())
}

func TestParsePorcelainOutputEmpty(t *testing.T) {
	assert.Empty(t, parsePorcelainOutput(""))
}

func TestWorktreeInfoString(t *testing.T) {
	attached := WorktreeInfo{Path: "/work/project/main", Branch: "refs/heads/main"}
	assert.Equal(t, "/work/project/main (main)", attached.String())

	detached := WorktreeInfo{Path: "/work/project/experiment"}
	assert.Equal(t, "/work/project/experiment (detached)", detached.String())
}

func TestIsDirtyWorktreeError(t *testing.T) {
	dirty := "fatal: '/work/project/feature' contains modified or untracked files, use --force to delete it"
	assert.True(t, isDirtyWorktreeError(dirty))

	assert.False(t, isDirtyWorktreeError("fatal: '/work/project/feature' is not a working tree"))
	assert.False(t, isDirtyWorktreeError(""))
}
