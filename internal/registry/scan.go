// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"
	"github.com/xdgmenu/xdgmenu/pkg/keyfile"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default number of records decoded concurrently.
const DefaultWorkers = 4

type (
	// Option configures Load.
	Option func(*loadOptions)

	loadOptions struct {
		workers int
	}

	// candidate is a discovered record file, in discovery order.
	candidate struct {
		id   string
		path string
	}

	// loaded is the decode outcome for one candidate.
	loaded struct {
		entry *desktopentry.Entry
		diag  *diagnostic.Diagnostic
	}
)

// WithWorkers sets how many records are decoded concurrently. Values below 1
// are ignored.
func WithWorkers(n int) Option {
	return func(o *loadOptions) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// Load scans dirs in order and registers every application record found.
// Missing directories are skipped silently; unreadable directories and
// malformed records produce diagnostics. The returned error is non-nil only
// when ctx is canceled.
func Load(ctx context.Context, dirs []string, opts ...Option) (*Registry, []diagnostic.Diagnostic, error) {
	options := loadOptions{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&options)
	}

	var diags []diagnostic.Diagnostic
	var candidates []candidate
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, diags, fmt.Errorf("scan application directories canceled: %w", err)
		}
		found, dirDiags := discoverInDir(dir)
		candidates = append(candidates, found...)
		diags = append(diags, dirDiags...)
	}

	results := make([]loaded, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = loadCandidate(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, diags, fmt.Errorf("load application records canceled: %w", err)
	}

	r := &Registry{
		dirs: append([]string(nil), dirs...),
		byID: make(map[string]*desktopentry.Entry, len(candidates)),
	}
	for i, res := range results {
		if res.diag != nil {
			diags = append(diags, *res.diag)
			continue
		}
		if !r.add(res.entry) {
			first, _ := r.Lookup(res.entry.ID)
			diags = append(diags, diagnostic.Warnf(diagnostic.CodeAppRecordShadowed, candidates[i].path,
				"%s is shadowed by %s", res.entry.ID, first.Path))
		}
	}
	r.seal()

	slog.Debug("application registry loaded", "records", r.Len(), "dirs", len(dirs))
	return r, diags, nil
}

// discoverInDir walks dir and returns its record files in lexical order.
// Records in subdirectories get the relative path, with separators replaced
// by '-', as identifier.
func discoverInDir(dir string) ([]candidate, []diagnostic.Diagnostic) {
	var found []candidate
	var diags []diagnostic.Diagnostic

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, []diagnostic.Diagnostic{diagnostic.Warnf(diagnostic.CodeAppDirUnreadable, dir,
			"failed to resolve application directory: %v", err).WithCause(err)}
	}
	if info, statErr := os.Stat(absDir); statErr != nil || !info.IsDir() {
		return nil, nil
	}

	walkErr := filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diags = append(diags, diagnostic.Warnf(diagnostic.CodeAppDirUnreadable, path,
				"failed to read application directory: %v", err).WithCause(err))
			if d != nil && d.IsDir() && path != absDir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), desktopentry.ApplicationExt) {
			return nil
		}
		rel, relErr := filepath.Rel(absDir, path)
		if relErr != nil {
			return nil
		}
		found = append(found, candidate{
			id:   strings.ReplaceAll(filepath.ToSlash(rel), "/", "-"),
			path: path,
		})
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, fs.SkipDir) {
		diags = append(diags, diagnostic.Warnf(diagnostic.CodeAppDirUnreadable, absDir,
			"failed to walk application directory: %v", walkErr).WithCause(walkErr))
	}

	return found, diags
}

func loadCandidate(c candidate) loaded {
	f := keyfile.ReadFile(c.path)
	if f.IsEmpty() {
		d := diagnostic.Warnf(diagnostic.CodeKeyfileUnreadable, c.path, "record %s is empty or unreadable", c.id)
		return loaded{diag: &d}
	}
	e, err := desktopentry.Parse(c.id, c.path, f)
	if err != nil {
		d := diagnostic.Warnf(diagnostic.CodeAppRecordSkipped, c.path, "skipping %s: %v", c.id, err).WithCause(err)
		return loaded{diag: &d}
	}
	// Hidden records claim their identifier regardless of type so they mask
	// lower-priority copies.
	if !e.IsApplication() && !e.Hidden {
		d := diagnostic.Warnf(diagnostic.CodeAppRecordSkipped, c.path, "skipping %s: type %q is not %q", c.id, e.Type, desktopentry.TypeApplication)
		return loaded{diag: &d}
	}
	return loaded{entry: e}
}
