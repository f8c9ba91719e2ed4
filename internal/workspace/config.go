package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ConfigFileName is the per-workspace config file, stored alongside the
// bare storage and the worktree directories.
const ConfigFileName = ".worktree.json"

// Config is the persisted per-workspace record. It is written once at
// clone time, after the remote's real default branch has been resolved,
// and read whenever a later operation needs a base branch and none was
// supplied explicitly.
type Config struct {
	// DefaultBranch is the resolved default branch of the remote.
	DefaultBranch string `json:"defaultBranch"`

	// RepositoryURL is the clone URL of the remote.
	RepositoryURL string `json:"repositoryUrl"`
}

// ConfigStore persists workspace configs under a workspace root directory.
type ConfigStore struct {
	// Dir is the workspace root (<base>/<repositoryName>).
	Dir string

	// Warnings receives diagnostics for degraded conditions such as an
	// unreadable config file. Defaults to a stderr writer when nil-safe
	// construction is used via NewConfigStore.
	Warnings func(format string, args ...any)
}

// NewConfigStore creates a ConfigStore for the given workspace directory.
func NewConfigStore(dir string) *ConfigStore {
	return &ConfigStore{
		Dir: dir,
		Warnings: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
}

func (s *ConfigStore) path() string {
	return filepath.Join(s.Dir, ConfigFileName)
}

// Save serializes the config to the workspace config path, overwriting
// any existing file. It fails if the workspace directory does not exist;
// the caller is responsible for creating the workspace first.
func (s *ConfigStore) Save(cfg Config) error {
	if _, err := os.Stat(s.Dir); err != nil {
		return fmt.Errorf("workspace directory %s: %w", s.Dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing workspace config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path(), err)
	}
	return nil
}

// Load returns the parsed config. The second return value is false when
// no config exists yet — a valid state for workspaces created before the
// config file was introduced, or cloned by other tooling.
//
// A file that exists but cannot be parsed is treated the same as an
// absent file (degraded, not fatal); a diagnostic is emitted so the user
// can repair or delete it. The bytes are passed through jsonc first so
// hand-edited files with comments or trailing commas still parse.
func (s *ConfigStore) Load() (Config, bool, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("reading %s: %w", s.path(), err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		if s.Warnings != nil {
			s.Warnings("ignoring unreadable config %s: %v", s.path(), err)
		}
		return Config{}, false, nil
	}

	return cfg, true, nil
}

// DefaultBranch returns the stored default branch. The second return
// value is false when no config exists or the field is unset.
func (s *ConfigStore) DefaultBranch() (string, bool) {
	cfg, ok, err := s.Load()
	if err != nil || !ok || cfg.DefaultBranch == "" {
		return "", false
	}
	return cfg.DefaultBranch, true
}
