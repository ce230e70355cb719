// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/xdgmenu/xdgmenu/internal/resolver"

	"github.com/spf13/cobra"
)

func newPathsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the XDG directories that are searched",
		Long: `Show the root menu document lookup and the default application,
directory-metadata and merge directories derived from the XDG environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showPaths(app)
			return nil
		},
	}
}

func showPaths(app *App) {
	env := app.Env()
	cfg := app.effectiveConfig()
	w := app.stdout

	menuFile := SubtitleStyle.Render("(not found)")
	switch {
	case cfg.MenuFile != "":
		menuFile = cfg.MenuFile + " " + SubtitleStyle.Render("(from config)")
	default:
		if path, ok := env.FindMenuFile(); ok {
			menuFile = path
		}
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Menu file"), menuFile)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Menu file name"), env.MenuFileName())

	desktops := resolver.Desktops(env, cfg)
	desktopList := SubtitleStyle.Render("(none)")
	if len(desktops) > 0 {
		desktopList = strings.Join(desktops, ":")
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Desktops"), desktopList)

	printDirList(w, "Menu directories", env.MenuDirs())
	printDirList(w, "Application directories", resolver.ApplicationDirs(nil, env, cfg))
	printDirList(w, "Directory directories", env.DirectoryDirs())
	printDirList(w, "Merge directories", env.MergeDirs())
}

func printDirList(w io.Writer, title string, dirs []string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", TitleStyle.Render(title))
	if len(dirs) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
		return
	}
	for _, d := range dirs {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}
