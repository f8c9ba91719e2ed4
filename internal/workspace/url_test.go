package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/wtm/internal/model"
)

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/group/project.git", "project"},
		{"https://example.com/group/project", "project"},
		{"git@example.com:group/project.git", "project"},
		{"git@example.com:project.git", "project"},
		{"https://example.com/deep/nested/group/repo", "repo"},
	}

	for _, tt := range tests {
		name, err := RepoNameFromURL(tt.url)
		require.NoError(t, err, "url %q", tt.url)
		assert.Equal(t, tt.want, name, "url %q", tt.url)
	}
}

func TestRepoNameFromURLInvalid(t *testing.T) {
	for _, url := range []string{"", "   ", "https://example.com/", "https://example.com/group/"} {
		_, err := RepoNameFromURL(url)
		require.Error(t, err, "url %q", url)
		assert.Equal(t, model.ExitInvalidRepositoryURL, model.CodeOf(err), "url %q", url)
	}
}
