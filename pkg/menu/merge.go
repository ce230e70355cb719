// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"

	"golang.org/x/sync/errgroup"
)

const (
	// MergeKindFile merges one descriptor document (<MergeFile>).
	MergeKindFile MergeKind = "file"
	// MergeKindDir merges every descriptor document of a directory (<MergeDir>).
	MergeKindDir MergeKind = "dir"
)

const (
	// MergeModePath uses the target as given, falling back to a sibling of
	// the current document.
	MergeModePath MergeMode = "path"
	// MergeModeRelative resolves the target against the current document's directory.
	MergeModeRelative MergeMode = "relative"
	// MergeModeParent searches the merge directories, other than the current
	// document's own, for a document with the same name.
	MergeModeParent MergeMode = "parent"
)

// menuFileExt is the file extension of descriptor documents merged by <MergeDir>.
const menuFileExt = ".menu"

var (
	// ErrInvalidMergeKind is returned when a MergeKind value is not recognized.
	ErrInvalidMergeKind = errors.New("invalid merge kind")
	// ErrInvalidMergeMode is returned when a MergeMode value is not recognized.
	ErrInvalidMergeMode = errors.New("invalid merge mode")
)

type (
	// MergeKind distinguishes <MergeFile> from <MergeDir>.
	MergeKind string

	// MergeMode selects how a merge target is located.
	MergeMode string

	// MergeDirective is one <MergeFile> or <MergeDir> instruction.
	MergeDirective struct {
		Kind   MergeKind
		Target string
		Mode   MergeMode
	}
)

// String renders the directive for dumps.
func (d MergeDirective) String() string {
	return fmt.Sprintf("%s(%s:%s)", d.Kind, d.Mode, d.Target)
}

// IsValid returns whether the MergeKind is recognized.
func (k MergeKind) IsValid() (bool, []error) {
	switch k {
	case MergeKindFile, MergeKindDir:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidMergeKind, k)}
	}
}

// IsValid returns whether the MergeMode is recognized.
func (m MergeMode) IsValid() (bool, []error) {
	switch m {
	case MergeModePath, MergeModeRelative, MergeModeParent:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidMergeMode, m)}
	}
}

// resolveMerge parses the documents named by d and returns them as child
// nodes, in directory order for <MergeDir>.
func (dp *docParser) resolveMerge(d MergeDirective, sc scope) []*Node {
	switch d.Kind {
	case MergeKindFile:
		path, ok := dp.locateFile(d, sc)
		if !ok {
			dp.diags = append(dp.diags, diagnostic.Warnf(diagnostic.CodeMergeTargetMissing, dp.doc.path,
				"merge target %q not found", d.Target))
			return nil
		}
		child, diags := dp.parser.parseMerged(path, dp.doc, sc)
		dp.diags = append(dp.diags, diags...)
		if child == nil {
			return nil
		}
		return []*Node{child}
	case MergeKindDir:
		return dp.mergeDir(dp.locateDir(d.Target), sc)
	default:
		return nil
	}
}

// locateFile finds the document a <MergeFile> refers to.
func (dp *docParser) locateFile(d MergeDirective, sc scope) (string, bool) {
	switch d.Mode {
	case MergeModeParent:
		name := filepath.Base(dp.doc.path)
		if d.Target != "" {
			name = filepath.Base(d.Target)
		}
		candidates := append(slices.Clone(sc.mergeDirs), dp.parser.paths.MenuDirs()...)
		for _, dir := range candidates {
			if canonicalPath(dir) == dp.doc.dir {
				continue
			}
			if p := filepath.Join(dir, name); isFile(p) {
				return p, true
			}
		}
		return "", false
	case MergeModeRelative:
		p := filepath.Join(dp.doc.dir, d.Target)
		return p, isFile(p)
	default:
		if isFile(d.Target) {
			return d.Target, true
		}
		p := filepath.Join(dp.doc.dir, filepath.Base(d.Target))
		return p, isFile(p)
	}
}

// locateDir resolves a <MergeDir> target. Anything other than an absolute
// existing directory is taken relative to the current document; an absolute
// target that does not exist keeps only its last element.
func (dp *docParser) locateDir(target string) string {
	if !filepath.IsAbs(target) {
		return filepath.Join(dp.doc.dir, target)
	}
	if isDir(target) {
		return target
	}
	return filepath.Join(dp.doc.dir, filepath.Base(target))
}

// mergeDir parses every descriptor document of dir concurrently and returns
// the resulting nodes in file-name order.
func (dp *docParser) mergeDir(dir string, sc scope) []*Node {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("merge directory unavailable", "dir", dir, "error", err)
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), menuFileExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	nodes := make([]*Node, len(files))
	diags := make([][]diagnostic.Diagnostic, len(files))
	var g errgroup.Group
	g.SetLimit(dp.parser.workers)
	for i, f := range files {
		g.Go(func() error {
			nodes[i], diags[i] = dp.parser.parseMerged(f, dp.doc, sc)
			return nil
		})
	}
	_ = g.Wait()

	var out []*Node
	for i := range files {
		dp.diags = append(dp.diags, diags[i]...)
		if nodes[i] != nil {
			out = append(out, nodes[i])
		}
	}
	return out
}

// parseMerged parses the merged document at path on behalf of parent. A
// document already open on the merge chain, or a chain longer than the
// configured bound, yields an empty anonymous node and an error diagnostic.
// An unreadable or malformed document yields nil.
func (p *Parser) parseMerged(path string, parent document, sc scope) (*Node, []diagnostic.Diagnostic) {
	canonical := canonicalPath(path)
	if slices.Contains(parent.stack, canonical) {
		return &Node{Source: canonical}, []diagnostic.Diagnostic{
			diagnostic.Errorf(diagnostic.CodeMergeCycle, parent.path,
				"merge of %s would reopen a document on the merge chain (%s)", canonical,
				strings.Join(append(slices.Clone(parent.stack), canonical), " -> ")),
		}
	}
	if len(parent.stack) > p.maxDepth {
		return &Node{Source: canonical}, []diagnostic.Diagnostic{
			diagnostic.Errorf(diagnostic.CodeMergeDepthExceeded, parent.path,
				"merge of %s exceeds the maximum merge depth of %d", canonical, p.maxDepth),
		}
	}

	root, err := readDocument(canonical)
	if err != nil {
		return nil, []diagnostic.Diagnostic{
			diagnostic.Warnf(diagnostic.CodeMergeParseFailed, canonical, "merged document skipped").WithCause(err),
		}
	}

	dp := &docParser{parser: p, doc: parent.child(canonical)}
	node := dp.parseMenu(root, sc)
	return node, dp.diags
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
