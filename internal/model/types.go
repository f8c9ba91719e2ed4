// Package model defines the shared domain types for the wtm CLI: the
// error kinds produced by the workspace lifecycle operations and the
// process exit codes they map to.
//
// All state lives on disk (the workspace directory tree and the
// per-workspace config file); these types are transient representations
// passed between the workspace manager and the CLI layer.
package model

import (
	"errors"
	"fmt"
)

// ExitCode defines the CLI exit codes. Each distinguishable failure kind
// gets its own code so scripts can branch on the outcome of a command
// without parsing error text.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitGitError indicates the git binary exited non-zero and the
	// failure could not be classified further.
	ExitGitError ExitCode = 2

	// ExitWorkspaceExists indicates a clone target workspace directory
	// already exists.
	ExitWorkspaceExists ExitCode = 3

	// ExitRepositoryNotFound indicates the workspace's bare storage
	// (.bare) is missing.
	ExitRepositoryNotFound ExitCode = 4

	// ExitWorktreeExists indicates the target worktree directory
	// already exists.
	ExitWorktreeExists ExitCode = 5

	// ExitWorktreeDirty indicates removal was blocked by uncommitted or
	// untracked content; the caller should retry with --force.
	ExitWorktreeDirty ExitCode = 6

	// ExitInvalidRepositoryURL indicates a clone URL with no usable
	// trailing path segment.
	ExitInvalidRepositoryURL ExitCode = 7

	// ExitRemoteBranchNotFound indicates the requested branch does not
	// exist on the remote.
	ExitRemoteBranchNotFound ExitCode = 8

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 9
)

// CLIError is the error type carried across the workspace/cli boundary.
// It pairs a human-readable message with the exit code the process
// should terminate with, plus the underlying cause if any.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the exit code from an error chain. Errors that do not
// carry a *CLIError anywhere in the chain map to ExitGeneralError.
func CodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
