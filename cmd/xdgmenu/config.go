// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/xdgmenu/xdgmenu/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `xdgmenu config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xdgmenu configuration",
		Long: `Manage xdgmenu configuration.

Configuration is stored in $XDG_CONFIG_HOME/xdgmenu/config.cue
(~/.config/xdgmenu/config.cue by default). Every key can be overridden
with an XDGMENU_* environment variable, e.g. XDGMENU_WORKERS=8.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			showConfig(app, cfg)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("", force)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			path := app.flags.configFile
			if path == "" {
				if path, err = config.FilePath(""); err != nil {
					return err
				}
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", dir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config) {
	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	value := func(v any) string { return valueStyle.Render(fmt.Sprintf("%v", v)) }
	list := func(items []string) string {
		if len(items) == 0 {
			return SubtitleStyle.Render("(none)")
		}
		return valueStyle.Render(strings.Join(items, ", "))
	}

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	source := SubtitleStyle.Render("(using defaults)")
	if path := app.flags.configFile; path != "" {
		source = path
	} else if path, err := config.FilePath(""); err == nil && fileExistsCheck(path) {
		source = path
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), source)
	fmt.Fprintln(w)

	menuFile := SubtitleStyle.Render("(XDG lookup)")
	if cfg.MenuFile != "" {
		menuFile = value(cfg.MenuFile)
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("menu_file"), menuFile)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("desktop_environment"), list(cfg.DesktopEnvironment))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("app_dirs"), list(cfg.AppDirs))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("max_merge_depth"), value(cfg.MaxMergeDepth))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("workers"), value(cfg.Workers))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("show_hidden"), value(cfg.ShowHidden))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("output_format"), value(cfg.OutputFormat))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", value(cfg.UI.Verbose))
	fmt.Fprintf(w, "  color_scheme: %s\n", value(cfg.UI.ColorScheme))
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
