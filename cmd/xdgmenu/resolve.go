// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xdgmenu/xdgmenu/internal/config"
	"github.com/xdgmenu/xdgmenu/internal/resolver"
	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"
	"github.com/xdgmenu/xdgmenu/pkg/menu"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// exitDiagnosticErrors is the exit status of `resolve --strict` when an
// error-severity diagnostic was reported.
const exitDiagnosticErrors = 2

type resolveFlags struct {
	format     string
	desktops   []string
	showHidden bool
	quiet      bool
	strict     bool
}

func newResolveCommand(app *App) *cobra.Command {
	var flags resolveFlags

	resolveCmd := &cobra.Command{
		Use:   "resolve [MENU]",
		Short: "Resolve and print a menu tree",
		Long: `Resolve the menu described by MENU, or by the XDG lookup when MENU is omitted.

Diagnostics (missing directory files, merge cycles, unreadable records) are
printed to stderr; the resolved tree is printed to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, app, flags)
			if err != nil {
				return err
			}
			opts := resolver.Options{Env: app.Env(), Config: cfg}
			if len(args) == 1 {
				opts.MenuFile = args[0]
			}

			res, err := resolver.Resolve(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if !flags.quiet {
				printDiagnostics(app.stderr, res.Diagnostics, app.verbose())
			}
			if err := writeMenu(app.stdout, res.Root, cfg.OutputFormat); err != nil {
				return err
			}
			if flags.strict && diagnostic.HasErrors(res.Diagnostics) {
				return &ExitError{Code: exitDiagnosticErrors}
			}
			return nil
		},
	}

	resolveCmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, json or toml (default from config)")
	resolveCmd.Flags().StringSliceVar(&flags.desktops, "desktop", nil, "desktop names used for OnlyShowIn/NotShowIn (default $XDG_CURRENT_DESKTOP)")
	resolveCmd.Flags().BoolVar(&flags.showHidden, "show-hidden", false, "keep NoDisplay menus and applications hidden on this desktop")
	resolveCmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not print diagnostics")
	resolveCmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when an error diagnostic is reported")

	return resolveCmd
}

// resolveConfig applies the command-line overrides to the loaded config.
func resolveConfig(cmd *cobra.Command, app *App, flags resolveFlags) (*config.Config, error) {
	cfg := *app.effectiveConfig()
	if flags.format != "" {
		format := config.OutputFormat(flags.format)
		if ok, errs := format.IsValid(); !ok {
			return nil, errs[0]
		}
		cfg.OutputFormat = format
	}
	if cmd.Flags().Changed("desktop") {
		cfg.DesktopEnvironment = flags.desktops
	}
	if flags.showHidden {
		cfg.ShowHidden = true
	}
	return &cfg, nil
}

func writeMenu(w io.Writer, root *menu.Node, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(menu.NewSnapshot(root))
	case config.OutputTOML:
		data, err := toml.Marshal(menu.NewSnapshot(root))
		if err != nil {
			return fmt.Errorf("failed to encode menu as TOML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return menu.Dump(w, root)
	}
}

// printDiagnostics writes one styled line per diagnostic. Causes are only
// shown in verbose mode.
func printDiagnostics(w io.Writer, diags []diagnostic.Diagnostic, verbose bool) {
	for _, d := range diags {
		label := WarningStyle.Render("warning:")
		if d.Severity == diagnostic.SeverityError {
			label = ErrorStyle.Render("error:")
		}
		line := fmt.Sprintf("%s %s %s", label, diagnosticCodeStyle.Render("["+string(d.Code)+"]"), d.Message)
		if d.Path != "" {
			line += " " + VerboseStyle.Render("("+d.Path+")")
		}
		if verbose && d.Cause != nil {
			line += "\n    " + VerboseStyle.Render(d.Cause.Error())
		}
		fmt.Fprintln(w, line)
	}
}
