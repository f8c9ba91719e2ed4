package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorMessage(t *testing.T) {
	err := NewCLIError(ExitWorktreeDirty, "worktree has uncommitted changes")
	assert.Equal(t, "worktree has uncommitted changes", err.Error())
}

func TestCLIErrorWrapsUnderlying(t *testing.T) {
	cause := errors.New("exit status 128")
	err := WrapCLIError(ExitGitError, "git clone failed", cause)

	assert.Equal(t, "git clone failed: exit status 128", err.Error())
	assert.ErrorIs(t, err, cause, "Unwrap should expose the cause to errors.Is")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, CodeOf(nil))
	assert.Equal(t, ExitGeneralError, CodeOf(errors.New("plain")))
	assert.Equal(t, ExitWorkspaceExists, CodeOf(NewCLIError(ExitWorkspaceExists, "exists")))

	// The CLIError may be buried under further wrapping by callers.
	wrapped := fmt.Errorf("running clone: %w", NewCLIError(ExitInvalidRepositoryURL, "bad url"))
	assert.Equal(t, ExitInvalidRepositoryURL, CodeOf(wrapped))
}
