package workspace

import "strings"

// isDirtyWorktreeError reports whether git's worktree-removal diagnostic
// indicates uncommitted or untracked content.
//
// This is the one place failure classification is done by matching git's
// human-readable error text, which is inherently fragile; keeping it in
// a single function means a future structured check (e.g. a status
// --porcelain pre-check) only has to replace this one spot.
//
// Current git wording:
//
//	fatal: 'path' contains modified or untracked files, use --force to delete it
func isDirtyWorktreeError(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "contains modified or untracked files") ||
		strings.Contains(s, "use --force")
}
