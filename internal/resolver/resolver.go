// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/xdgmenu/xdgmenu/internal/config"
	"github.com/xdgmenu/xdgmenu/internal/issue"
	"github.com/xdgmenu/xdgmenu/internal/registry"
	"github.com/xdgmenu/xdgmenu/internal/xdgpath"
	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"
	"github.com/xdgmenu/xdgmenu/pkg/menu"
)

// ErrMenuFileNotFound is returned when no root menu document can be located.
var ErrMenuFileNotFound = errors.New("menu file not found")

type (
	// Options are the inputs of one resolution.
	Options struct {
		// MenuFile overrides both the config and the XDG lookup when set.
		MenuFile string
		// Env supplies the XDG search directories.
		Env xdgpath.Environment
		// Config supplies tuning and filtering; nil means the defaults.
		Config *config.Config
	}

	// Result is a resolved menu tree together with everything used to build it.
	Result struct {
		MenuFile    string
		Root        *menu.Node
		Registry    *registry.Registry
		AppDirs     []string
		Desktops    []string
		Diagnostics []diagnostic.Diagnostic
	}
)

// Resolve locates, parses and builds the menu described by opts. Diagnostics
// are returned in stage order: parsing first, then registry loading. Only an
// unusable root document or a canceled ctx produces an error.
func Resolve(ctx context.Context, opts Options) (*Result, error) {
	cfg := effectiveConfig(opts.Config)

	menuFile, err := locateMenuFile(opts, cfg)
	if err != nil {
		return nil, err
	}

	parser := menu.NewParser(opts.Env, menu.WithMaxMergeDepth(cfg.MaxMergeDepth), menu.WithWorkers(cfg.Workers))
	parsed, err := parser.ParseFile(menuFile)
	if err != nil {
		return nil, parseError(menuFile, err)
	}

	appDirs := ApplicationDirs(parsed.Root, opts.Env, cfg)
	reg, regDiags, err := registry.Load(ctx, appDirs, registry.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}

	desktops := Desktops(opts.Env, cfg)
	menu.Build(parsed.Root, reg, menu.BuildOptions{Desktops: desktops, ShowHidden: cfg.ShowHidden})

	res := &Result{
		MenuFile:    menuFile,
		Root:        parsed.Root,
		Registry:    reg,
		AppDirs:     appDirs,
		Desktops:    desktops,
		Diagnostics: append(slices.Clone(parsed.Diagnostics), regDiags...),
	}
	slog.Debug("menu resolved", "file", menuFile, "apps", reg.Len(), "diagnostics", len(res.Diagnostics))
	return res, nil
}

// LoadApplications loads the registry from the standard application
// directories followed by the configured ones, without reading a menu.
func LoadApplications(ctx context.Context, opts Options) (*registry.Registry, []diagnostic.Diagnostic, error) {
	cfg := effectiveConfig(opts.Config)
	return registry.Load(ctx, ApplicationDirs(nil, opts.Env, cfg), registry.WithWorkers(cfg.Workers))
}

// ApplicationDirs returns the directories the registry is loaded from: every
// application directory named in the tree rooted at root, in tree order, or
// the XDG defaults when the tree names none; then the configured extra
// directories.
func ApplicationDirs(root *menu.Node, env xdgpath.Environment, cfg *config.Config) []string {
	var dirs []string
	add := func(list []string) {
		for _, d := range list {
			if !slices.Contains(dirs, d) {
				dirs = append(dirs, d)
			}
		}
	}
	if root != nil {
		root.Walk(func(n *menu.Node) { add(n.AppDirs) })
	}
	if len(dirs) == 0 {
		add(env.AppDirs())
	}
	add(effectiveConfig(cfg).AppDirs)
	return dirs
}

// Desktops returns the configured desktop names, or $XDG_CURRENT_DESKTOP.
func Desktops(env xdgpath.Environment, cfg *config.Config) []string {
	if cfg = effectiveConfig(cfg); len(cfg.DesktopEnvironment) > 0 {
		return slices.Clone(cfg.DesktopEnvironment)
	}
	return slices.Clone(env.CurrentDesktop)
}

func locateMenuFile(opts Options, cfg *config.Config) (string, error) {
	switch {
	case opts.MenuFile != "":
		return opts.MenuFile, nil
	case cfg.MenuFile != "":
		return cfg.MenuFile, nil
	}
	if path, ok := opts.Env.FindMenuFile(); ok {
		return path, nil
	}

	return "", issue.NewErrorContext().
		WithOperation("locate menu file").
		WithResource(opts.Env.MenuFileName()).
		WithSuggestion("Run 'xdgmenu paths' to see the directories that are searched").
		WithSuggestion("Pass the menu file explicitly: xdgmenu resolve FILE").
		WithIssue(issue.MenuFileNotFoundId).
		Wrap(fmt.Errorf("%w in %v", ErrMenuFileNotFound, opts.Env.MenuDirs())).
		BuildError()
}

func parseError(path string, err error) error {
	ctx := issue.NewErrorContext().WithOperation("parse menu file").WithResource(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ctx.
			WithSuggestion("Check the path, or omit it to use the XDG lookup").
			WithIssue(issue.MenuFileNotFoundId).
			Wrap(fmt.Errorf("%w: %w", ErrMenuFileNotFound, err)).
			BuildError()
	}
	return ctx.
		WithSuggestion("Check that the document is well-formed XML with a <Menu> root").
		WithIssue(issue.MenuParseErrorId).
		Wrap(err).
		BuildError()
}

func effectiveConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}
