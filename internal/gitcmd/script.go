package gitcmd

import (
	"strings"
	"sync"

	"github.com/shinji-kodama/wtm/internal/model"
)

// Response is the scripted result for one matched git invocation.
type Response struct {
	Stdout string
	Stderr string
	Fail   bool // when true, the call returns an ExitGitError carrying Stderr
}

// rule pairs an argument prefix with its response.
type rule struct {
	prefix   []string
	response Response
}

// Call records one git invocation for verification in tests.
type Call struct {
	Dir  string
	Args []string
}

// ScriptRunner is a Runner test double. Invocations are matched against
// registered argument prefixes in registration order; unmatched calls
// succeed with empty output. All calls are recorded so tests can assert
// which git commands ran (and, as importantly, which did not).
type ScriptRunner struct {
	mu    sync.Mutex
	rules []rule
	calls []Call
}

// NewScriptRunner creates an empty ScriptRunner.
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{}
}

// On registers a response for any invocation whose arguments start with
// the given prefix, e.g. On([]string{"worktree", "remove"}, ...).
func (r *ScriptRunner) On(prefix []string, response Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{prefix: prefix, response: response})
}

// Calls returns a copy of all recorded invocations.
func (r *ScriptRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]Call, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// CalledWith reports whether any recorded invocation starts with the
// given argument prefix.
func (r *ScriptRunner) CalledWith(prefix ...string) bool {
	for _, c := range r.Calls() {
		if hasPrefix(c.Args, prefix) {
			return true
		}
	}
	return false
}

// Run implements Runner by replaying the first matching scripted response.
func (r *ScriptRunner) Run(dir string, args ...string) (string, string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Dir: dir, Args: args})
	rules := r.rules
	r.mu.Unlock()

	for _, rl := range rules {
		if hasPrefix(args, rl.prefix) {
			if rl.response.Fail {
				message := "git " + strings.Join(args, " ") + " failed"
				if rl.response.Stderr != "" {
					message += ": " + rl.response.Stderr
				}
				err := model.NewCLIError(model.ExitGitError, message)
				return rl.response.Stdout, rl.response.Stderr, err
			}
			return rl.response.Stdout, rl.response.Stderr, nil
		}
	}

	return "", "", nil
}

func hasPrefix(args, prefix []string) bool {
	if len(args) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if args[i] != p {
			return false
		}
	}
	return true
}

var _ Runner = (*ScriptRunner)(nil)
