// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xdgmenu/xdgmenu/internal/config"
	"github.com/xdgmenu/xdgmenu/internal/xdgpath"

	"github.com/charmbracelet/log"
)

type (
	// App wires the services used by the command handlers.
	App struct {
		Config    config.Provider
		LookupEnv xdgpath.LookupFunc
		stdout    io.Writer
		stderr    io.Writer

		flags rootFlags
		// cfg is the configuration loaded by the root pre-run hook.
		cfg *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		LookupEnv xdgpath.LookupFunc
		Stdout    io.Writer
		Stderr    io.Writer
	}

	rootFlags struct {
		verbose    bool
		configFile string
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	return &App{
		Config:    deps.Config,
		LookupEnv: deps.LookupEnv,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}, nil
}

// Env resolves the XDG environment the commands operate on.
func (a *App) Env() xdgpath.Environment {
	return xdgpath.FromEnv(a.LookupEnv)
}

// loadConfig reads the configuration selected by --config.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
}

// effectiveConfig returns the configuration loaded at startup, or the defaults.
func (a *App) effectiveConfig() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// verbose reports whether verbose output was requested by flag or config.
func (a *App) verbose() bool {
	return a.flags.verbose || (a.cfg != nil && a.cfg.UI.Verbose)
}

// initialize loads the configuration and installs the logger. A broken config
// file is reported and the defaults are used so that inspection commands keep
// working.
func (a *App) initialize(ctx context.Context) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg
	slog.SetDefault(slog.New(newLogHandler(a.stderr, a.verbose())))
}

// newLogHandler returns the charmbracelet/log handler used as the slog default.
func newLogHandler(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "xdgmenu",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
