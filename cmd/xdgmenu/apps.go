// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/xdgmenu/xdgmenu/internal/issue"
	"github.com/xdgmenu/xdgmenu/internal/resolver"
	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"
)

func newAppsCommand(app *App) *cobra.Command {
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect application records",
		Long: `Inspect the application records found in the XDG application directories
and the directories configured with app_dirs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var all bool
	var category string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List application records by identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listApps(cmd, app, all, category)
		},
	}
	listCmd.Flags().BoolVarP(&all, "all", "a", false, "include records that are hidden on this desktop")
	listCmd.Flags().StringVarP(&category, "category", "c", "", "only list records in this category")

	showCmd := &cobra.Command{
		Use:   "show ID [FILE...]",
		Short: "Show one application record and its command line",
		Long: `Show one application record. FILE arguments are substituted for the
%f, %F, %u and %U field codes of the Exec key to preview the command line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showApp(cmd, app, args[0], args[1:])
		},
	}

	appsCmd.AddCommand(listCmd, showCmd)
	return appsCmd
}

func listApps(cmd *cobra.Command, app *App, all bool, category string) error {
	cfg := app.effectiveConfig()
	reg, diags, err := resolver.LoadApplications(cmd.Context(), resolver.Options{Env: app.Env(), Config: cfg})
	if err != nil {
		return err
	}
	if app.verbose() {
		printDiagnostics(app.stderr, diags, true)
	}

	desktops := resolver.Desktops(app.Env(), cfg)
	for _, e := range reg.All() {
		if e.Hidden {
			continue
		}
		if !all && !cfg.ShowHidden && !e.Visible(desktops) {
			continue
		}
		if category != "" && !e.HasCategory(category) {
			continue
		}
		fmt.Fprintf(app.stdout, "%s\t%s\n", CmdStyle.Render(e.ID), e.DisplayName())
	}
	return nil
}

func showApp(cmd *cobra.Command, app *App, id string, files []string) error {
	cfg := app.effectiveConfig()
	reg, _, err := resolver.LoadApplications(cmd.Context(), resolver.Options{Env: app.Env(), Config: cfg})
	if err != nil {
		return err
	}

	e, ok := reg.Lookup(id)
	if !ok || e.Hidden {
		return issue.NewErrorContext().
			WithOperation("show application").
			WithResource(id).
			WithSuggestion("Run 'xdgmenu apps list --all' to see the known identifiers").
			WithIssue(issue.ApplicationNotFoundId).
			Wrap(fmt.Errorf("no record in %s", strings.Join(reg.Dirs(), ":"))).
			BuildError()
	}

	return printApp(app.stdout, e, resolver.Desktops(app.Env(), cfg), files)
}

func printApp(w io.Writer, e *desktopentry.Entry, desktops, files []string) error {
	field := func(key, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %s: %s\n", CmdStyle.Render(key), value)
		}
	}

	fmt.Fprintln(w, TitleStyle.Render(e.ID))
	field("Name", e.Name)
	field("GenericName", e.GenericName)
	field("Comment", e.Comment)
	field("Icon", e.Icon)
	field("Path", e.Path)
	field("Categories", strings.Join(e.Categories, ";"))
	field("OnlyShowIn", strings.Join(e.OnlyShowIn, ";"))
	field("NotShowIn", strings.Join(e.NotShowIn, ";"))
	field("Exec", e.Exec)
	field("Visible", yesNo(e.Visible(desktops)))
	if e.Terminal {
		field("Terminal", "yes")
	}

	if e.Exec == "" {
		return nil
	}
	argv, err := e.Argv(files...)
	if err != nil {
		return err
	}
	line, err := quoteArgv(argv)
	if err != nil {
		return err
	}
	field("Command", line)
	return nil
}

// quoteArgv renders argv as a shell command line.
func quoteArgv(argv []string) (string, error) {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("failed to quote argument %q: %w", arg, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
