// Package cli implements the cobra-based command surface for wtm.
//
// Each subcommand (clone, branch, list, remove, remotes, open, menu) is
// defined in its own file. Commands share an App value carrying the
// loaded configuration, the git runner, and the global flag state; this
// file defines the App, the root command, and the Run entry point that
// translates command errors into process exit codes.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/wtm/internal/config"
	"github.com/shinji-kodama/wtm/internal/gitcmd"
	"github.com/shinji-kodama/wtm/internal/model"
	"github.com/shinji-kodama/wtm/internal/workspace"
)

// Version, Commit, and Date are set at build time via ldflags and
// injected from the main package for --version output.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// App holds the state shared by all subcommands for one invocation.
type App struct {
	// Config is the loaded tool configuration (base dir, default
	// branch fallback, editor command).
	Config config.Config

	// Runner is the git invocation layer; tests may substitute a
	// scripted runner.
	Runner gitcmd.Runner

	// Stdout and Stderr are the command's output streams.
	Stdout io.Writer
	Stderr io.Writer

	// Flag state bound to persistent flags on the root command.
	jsonOutput bool
	verbose    bool
	baseDir    string
}

// Manager builds a workspace Manager for the named repository, wiring
// in the effective base directory, the configured fallback branch, and
// the app's git runner.
func (a *App) Manager(repoName string) *workspace.Manager {
	m := workspace.NewManager(a.EffectiveBaseDir(), repoName, a.Config.DefaultBranch, a.Runner)
	m.Logf = func(format string, args ...any) {
		fmt.Fprintf(a.Stderr, format+"\n", args...)
	}
	return m
}

// EffectiveBaseDir returns the --base-dir override when set, otherwise
// the configured base directory.
func (a *App) EffectiveBaseDir() string {
	if a.baseDir != "" {
		return a.baseDir
	}
	return a.Config.BaseDir
}

// VerboseLog prints a message to stderr only when --verbose is set.
func (a *App) VerboseLog(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// NewRootCommand creates and configures the root cobra command with all
// subcommands registered.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wtm",
		Short: "Manage git worktrees under shared bare repositories",
		Long: `wtm keeps one bare clone per repository and checks each branch out
into its own worktree directory, so several branches of the same
repository can be worked on side by side.

Layout per repository:
  <base>/<repo>/.bare/          shared bare clone
  <base>/<repo>/<branch>/       one directory per checked-out branch
  <base>/<repo>/.worktree.json  recorded default branch and origin URL`,

		// Errors are formatted by Run (text or JSON), so cobra's own
		// usage/error printing is silenced.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.baseDir, "base-dir", "", "Workspace base directory (overrides config)")

	rootCmd.AddCommand(NewCloneCommand(app))
	rootCmd.AddCommand(NewBranchCommand(app))
	rootCmd.AddCommand(NewListCommand(app))
	rootCmd.AddCommand(NewRemoveCommand(app))
	rootCmd.AddCommand(NewRemotesCommand(app))
	rootCmd.AddCommand(NewOpenCommand(app))
	rootCmd.AddCommand(NewMenuCommand(app))

	return rootCmd
}

// Run executes the CLI with the given arguments and streams, returning
// the process exit code. main wraps this in os.Exit; tests call it
// directly.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return int(model.ExitGeneralError)
	}

	app := &App{
		Config: cfg,
		Runner: gitcmd.NewExecRunner(),
		Stdout: stdout,
		Stderr: stderr,
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		app.printError(err)
		return int(model.CodeOf(err))
	}
	return int(model.ExitSuccess)
}

// printError outputs an error in text or JSON format based on --json.
// Errors go to stderr either way; stdout is reserved for successful
// command output.
func (a *App) printError(err error) {
	if a.jsonOutput {
		errObj := map[string]any{
			"error": map[string]any{
				"message": err.Error(),
				"code":    int(model.CodeOf(err)),
			},
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(a.Stderr, string(data))
		return
	}
	fmt.Fprintf(a.Stderr, "Error: %v\n", err)
}
