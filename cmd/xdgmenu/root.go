// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xdgmenu/xdgmenu/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the xdgmenu command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xdgmenu",
		Short: "Resolve freedesktop application menus",
		Long: TitleStyle.Render("xdgmenu") + SubtitleStyle.Render(" - Resolve freedesktop application menus") + `

xdgmenu reads the XDG menu descriptor (applications.menu), merges every
drop-in and included document, loads the installed application records and
prints the menu tree a desktop would show.

` + SubtitleStyle.Render("Examples:") + `
  xdgmenu resolve                   Resolve the menu of the current desktop
  xdgmenu resolve --format json     Print the resolved tree as JSON
  xdgmenu apps list                 List the known application records
  xdgmenu apps show firefox.desktop Show one record and its command line
  xdgmenu paths                     Show the XDG directories that are searched`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.initialize(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/xdgmenu/config.cue)")

	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newAppsCommand(app))
	rootCmd.AddCommand(newPathsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with its status.
// This is called by main.main().
func Execute() {
	os.Exit(run())
}

// run executes the root command with the production dependencies and
// returns the process exit status.
func run() int {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return runApp(context.Background(), app, os.Args[1:])
}

func runApp(ctx context.Context, app *App, args []string) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// fang overrides rootCmd.Version, so the version is passed as an option.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// handleError prints a command error. Actionable errors are formatted with
// their suggestions and the catalog issue attached to them.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose()))
	if entry := ae.CatalogIssue(); entry != nil {
		rendered, renderErr := entry.Render(a.glamourStyle())
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", entry.Id(), "error", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// glamourStyle maps the configured color scheme to a glamour standard style.
func (a *App) glamourStyle() string {
	return string(a.effectiveConfig().UI.ColorScheme)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
