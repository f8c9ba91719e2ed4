// Package gitcmd provides the process-invocation layer for the wtm CLI.
//
// Every workspace lifecycle operation is ultimately one or more git CLI
// invocations. This package isolates "run an external program, capture
// stdout/stderr/exit status" behind a single narrow interface so the
// workspace package can be tested without a git binary installed.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go Git library (e.g., go-git)
//     because bare-repo worktree operations require full Git CLI
//     compatibility, and go-git's worktree support is limited.
//   - The directory is passed to git via the -C flag rather than
//     exec.Cmd.Dir, so git itself handles the directory switch and the
//     process working directory never changes.
package gitcmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/shinji-kodama/wtm/internal/model"
)

// Runner abstracts git invocation for testability. Production code uses
// ExecRunner; tests inject a ScriptRunner with pre-recorded responses.
type Runner interface {
	// Run executes `git -C <dir> <args...>` and returns trimmed stdout
	// and stderr. dir may be empty, in which case -C is omitted.
	// A non-zero exit is returned as a *model.CLIError with ExitGitError,
	// carrying the raw stderr text.
	Run(dir string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner invokes the real git binary via os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by the installed git binary.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a git command and captures its output. There is no
// caller-imposed timeout: a hang in git hangs the operation, matching
// the synchronous one-command-at-a-time control flow of the CLI.
func (r *ExecRunner) Run(dir string, args ...string) (string, string, error) {
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout := strings.TrimRight(stdoutBuf.String(), "\n")
	stderr := strings.TrimSpace(stderrBuf.String())

	if err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderr != "" {
			message = fmt.Sprintf("%s: %s", message, stderr)
		}
		return stdout, stderr, model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout, stderr, nil
}

var _ Runner = (*ExecRunner)(nil)
