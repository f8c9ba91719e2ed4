package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommandDirect(t *testing.T) {
	l := &Launcher{Command: "myeditor"}

	cmd := l.buildCommand("/work/project/feature")
	require.Len(t, cmd.Args, 2)
	assert.Contains(t, cmd.Args[0], "myeditor")
	assert.Equal(t, "/work/project/feature", cmd.Args[1])
}

func TestBuildCommandWSLInteropFallback(t *testing.T) {
	// A command that isn't on PATH inside WSL is routed through cmd.exe
	// so Windows-side PATH lookup applies.
	l := &Launcher{Command: "definitely-not-on-path-xyz", isWSL: true}

	cmd := l.buildCommand("/work/project/feature")
	require.Len(t, cmd.Args, 4)
	assert.Contains(t, cmd.Args[0], "cmd.exe")
	assert.Equal(t, []string{"/c", "definitely-not-on-path-xyz", "/work/project/feature"}, cmd.Args[1:])
}

func TestOpenMissingEditorFails(t *testing.T) {
	l := NewLauncher("definitely-not-on-path-xyz")
	err := l.Open(t.TempDir())
	assert.Error(t, err)
}
