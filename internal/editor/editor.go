// Package editor opens worktree directories in an external editor.
//
// This is a best-effort collaborator: a failure to launch the editor is
// reported as a warning by callers, never as a command failure. The one
// piece of host detection it performs is distinguishing WSL from native
// Linux, because editors installed on the Windows side are launched
// through the interop layer rather than directly.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens directories with a configured editor command.
type Launcher struct {
	// Command is the editor executable, e.g. "code".
	Command string

	// isWSL caches host detection; populated by NewLauncher.
	isWSL bool
}

// NewLauncher creates a Launcher for the given editor command.
func NewLauncher(command string) *Launcher {
	return &Launcher{Command: command, isWSL: detectWSL()}
}

// Open launches the editor on dir and returns once the editor process
// has been started. The editor is detached from the CLI's lifetime.
func (l *Launcher) Open(dir string) error {
	cmd := l.buildCommand(dir)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", l.Command, err)
	}
	// Release the process so a short-lived CLI run doesn't leave a
	// zombie behind once the editor exits.
	return cmd.Process.Release()
}

// buildCommand constructs the launch command for the current host. On
// WSL, Windows-side editors are resolved through cmd.exe so PATH lookup
// happens in the Windows environment.
func (l *Launcher) buildCommand(dir string) *exec.Cmd {
	if l.isWSL {
		if _, err := exec.LookPath(l.Command); err != nil {
			return exec.Command("cmd.exe", "/c", l.Command, dir)
		}
	}
	return exec.Command(l.Command, dir)
}

// detectWSL reports whether the process is running inside Windows
// Subsystem for Linux. /proc/version mentions Microsoft on WSL1 and
// WSL2; the binfmt interop entry is a second signal for setups where
// /proc/version has been changed.
func detectWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	if data, err := os.ReadFile("/proc/version"); err == nil {
		version := strings.ToLower(string(data))
		if strings.Contains(version, "microsoft") || strings.Contains(version, "wsl") {
			return true
		}
	}

	if _, err := os.Stat("/proc/sys/fs/binfmt_misc/WSLInterop"); err == nil {
		return true
	}

	return false
}
