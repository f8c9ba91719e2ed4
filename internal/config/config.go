// Package config loads the tool-level configuration for wtm.
//
// Unlike the per-workspace .worktree.json (owned by the workspace
// package), this file holds user preferences that apply to every
// workspace: where workspaces live, the fallback default branch, and
// the editor command. It lives at $XDG_CONFIG_HOME/wtm/config.yaml
// (~/.config/wtm/config.yaml when XDG_CONFIG_HOME is unset) and its
// absence is the normal state — all fields have defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FallbackDefaultBranch is the hard-coded default branch used when
// neither a workspace config nor the tool config names one.
const FallbackDefaultBranch = "main"

// Config holds the tool-level settings.
type Config struct {
	// BaseDir is the directory all workspaces are created under.
	BaseDir string `yaml:"baseDir"`

	// DefaultBranch is the static fallback base branch.
	DefaultBranch string `yaml:"defaultBranch"`

	// Editor is the command used to open a worktree directory.
	Editor string `yaml:"editor"`
}

// Default returns the built-in configuration: workspaces under
// ~/worktrees, branch fallback "main", editor "code".
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		BaseDir:       filepath.Join(home, "worktrees"),
		DefaultBranch: FallbackDefaultBranch,
		Editor:        "code",
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wtm", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wtm", "config.yaml"), nil
}

// Load reads the config file, filling unset fields from defaults. An
// absent file yields the defaults with no error; a present but invalid
// file is an error, since a user who wrote a config wants it honored.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if fileCfg.BaseDir != "" {
		cfg.BaseDir = expandHome(fileCfg.BaseDir)
	}
	if fileCfg.DefaultBranch != "" {
		cfg.DefaultBranch = fileCfg.DefaultBranch
	}
	if fileCfg.Editor != "" {
		cfg.Editor = fileCfg.Editor
	}

	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
