package workspace

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/wtm/internal/model"
)

// RepoNameFromURL derives the workspace name from a clone URL: the final
// path segment, with an optional ".git" suffix stripped. Both HTTPS and
// scp-style SSH URLs work, since both put the repository name after the
// last slash (or after the colon when there is no slash at all).
//
//	https://example.com/group/project.git → project
//	git@example.com:group/project.git     → project
//
// A URL with no usable trailing segment fails with an invalid-URL error.
func RepoNameFromURL(url string) (string, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return "", model.NewCLIError(model.ExitInvalidRepositoryURL,
			"invalid repository URL: empty")
	}

	segment := trimmed
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	} else if idx := strings.LastIndex(segment, ":"); idx >= 0 {
		// scp-style URL without a slash, e.g. git@host:project.git
		segment = segment[idx+1:]
	}

	name := strings.TrimSuffix(segment, ".git")
	if name == "" {
		return "", model.NewCLIError(model.ExitInvalidRepositoryURL,
			fmt.Sprintf("invalid repository URL %q: no repository name in path", url))
	}

	return name, nil
}
