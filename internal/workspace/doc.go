// Package workspace implements the worktree lifecycle for a bare-repo
// workspace layout.
//
// A workspace is a directory named after the repository, containing:
//
//	<base>/<repo>/.bare/          bare clone, the shared object database
//	<base>/<repo>/<branch>/       one checked-out worktree per branch
//	<base>/<repo>/.worktree.json  persisted default branch + origin URL
//
// The bare storage is created exactly once, at clone time, and is never
// itself checked out. Worktree existence is tested by directory presence
// rather than by querying git, except for the authoritative porcelain
// listing; each operation re-derives state from disk and from git, and
// no state is cached between invocations.
//
// All git interaction goes through gitcmd.Runner so the lifecycle can be
// exercised in tests with a scripted runner instead of a real git binary.
package workspace
