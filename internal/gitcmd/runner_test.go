package gitcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/wtm/internal/model"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	r := NewExecRunner()

	stdout, stderr, err := r.Run("", "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "git version")
	assert.Empty(t, stderr)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	r := NewExecRunner()

	// rev-parse outside any repository fails with a diagnostic on stderr.
	_, stderr, err := r.Run(t.TempDir(), "rev-parse", "--verify", "HEAD")
	require.Error(t, err)
	assert.NotEmpty(t, stderr)
	assert.Equal(t, model.ExitGitError, model.CodeOf(err))
}

func TestScriptRunnerMatchesPrefix(t *testing.T) {
	r := NewScriptRunner()
	r.On([]string{"worktree", "list"}, Response{Stdout: "worktree /tmp/x\n"})
	r.On([]string{"worktree", "remove"}, Response{Stderr: "fatal: boom", Fail: true})

	stdout, _, err := r.Run("/repo", "worktree", "list", "--porcelain")
	require.NoError(t, err)
	assert.Equal(t, "worktree /tmp/x\n", stdout)

	_, stderr, err := r.Run("/repo", "worktree", "remove", "feature")
	require.Error(t, err)
	assert.Equal(t, "fatal: boom", stderr)
	assert.Equal(t, model.ExitGitError, model.CodeOf(err))
}

func TestScriptRunnerRecordsCalls(t *testing.T) {
	r := NewScriptRunner()

	_, _, err := r.Run("/repo", "fetch", "origin", "main")
	require.NoError(t, err)

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/repo", calls[0].Dir)
	assert.Equal(t, []string{"fetch", "origin", "main"}, calls[0].Args)
	assert.True(t, r.CalledWith("fetch", "origin"))
	assert.False(t, r.CalledWith("worktree", "add"))
}
