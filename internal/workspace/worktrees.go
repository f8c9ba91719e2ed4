package workspace

import (
	"fmt"
	"strings"
)

// DetachedLabel is the branch label reported for worktrees in a detached
// HEAD state.
const DetachedLabel = "detached"

// WorktreeInfo holds metadata about a single worktree entry as parsed
// from `git worktree list --porcelain` output.
//
// Example porcelain block:
//
//	worktree /path/to/feature-branch
//	HEAD abc123def456
//	branch refs/heads/feature-branch
type WorktreeInfo struct {
	// Path is the absolute filesystem path to the worktree directory.
	Path string

	// Branch is the full branch reference (e.g., "refs/heads/main").
	// Empty if the worktree is in a detached HEAD state.
	Branch string

	// HEAD is the commit SHA the worktree currently points to.
	HEAD string

	// IsBare indicates this entry is the bare repository itself, which
	// git lists alongside the real worktrees.
	IsBare bool
}

// BranchName returns the short branch name for display: the ref with its
// refs/heads/ prefix stripped, or DetachedLabel for detached worktrees.
func (w WorktreeInfo) BranchName() string {
	if w.Branch == "" {
		return DetachedLabel
	}
	return strings.TrimPrefix(w.Branch, "refs/heads/")
}

// String renders the worktree as "<path> (<branch>)", the listing format
// shown to users.
func (w WorktreeInfo) String() string {
	return fmt.Sprintf("%s (%s)", w.Path, w.BranchName())
}

// parsePorcelainOutput parses `git worktree list --porcelain` output.
//
// The porcelain format separates worktree blocks with blank lines. Each
// block contains space-separated key-value lines plus optional standalone
// markers like "bare" or "detached". A detached worktree simply has no
// branch line, so its Branch field stays empty.
func parsePorcelainOutput(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	var current *WorktreeInfo
	for _, line := range lines {
		if line == "" {
			if current != nil {
				worktrees = append(worktrees, *current)
				current = nil
			}
			continue
		}

		key, value, _ := strings.Cut(line, " ")

		switch key {
		case "worktree":
			current = &WorktreeInfo{Path: value}
		case "HEAD":
			if current != nil {
				current.HEAD = value
			}
		case "branch":
			if current != nil {
				current.Branch = value
			}
		case "bare":
			if current != nil {
				current.IsBare = true
			}
		}
	}

	if current != nil {
		worktrees = append(worktrees, *current)
	}

	return worktrees
}
