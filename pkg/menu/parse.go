// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"

	"github.com/spf13/cast"
)

const (
	// DefaultMaxMergeDepth bounds nested <MergeFile>/<MergeDir> chains.
	DefaultMaxMergeDepth = 32
	// DefaultWorkers is the number of merged documents parsed concurrently.
	DefaultWorkers = 4
)

// ErrNotMenuDocument is returned when a document's root element is not <Menu>.
var ErrNotMenuDocument = errors.New("not a menu document")

type (
	// SearchPaths supplies the platform-standard directories used by the
	// Default* elements and by <MergeFile type="parent">.
	SearchPaths interface {
		AppDirs() []string
		DirectoryDirs() []string
		MergeDirs() []string
		MenuDirs() []string
	}

	// Option configures a Parser.
	Option func(*Parser)

	// Parser reads descriptor documents into Node trees.
	Parser struct {
		paths    SearchPaths
		maxDepth int
		workers  int
	}

	// ParseResult is the skeleton tree of one root document plus every
	// diagnostic recorded while reading it and its merged documents.
	ParseResult struct {
		Root        *Node
		Diagnostics []diagnostic.Diagnostic
	}

	// DocumentError is returned when the root document cannot be used.
	DocumentError struct {
		Path string
		Err  error
	}

	// element is a generic XML element.
	element struct {
		XMLName  xml.Name
		Attrs    []xml.Attr `xml:",any,attr"`
		CharData string     `xml:",chardata"`
		Children []element  `xml:",any"`
	}

	// document identifies the file being parsed and the merge chain leading to it.
	document struct {
		path  string
		dir   string
		stack []string
	}

	// scope is the state a <Menu> passes down to nested and merged menus.
	scope struct {
		appDirs       []string
		directoryDirs []string
		mergeDirs     []string
		defaultLayout *Layout
	}

	// docParser parses the elements of one document.
	docParser struct {
		parser *Parser
		doc    document
		diags  []diagnostic.Diagnostic
	}

	noPaths struct{}
)

// WithMaxMergeDepth bounds nested merges. Values below 1 are ignored.
func WithMaxMergeDepth(n int) Option {
	return func(p *Parser) {
		if n >= 1 {
			p.maxDepth = n
		}
	}
}

// WithWorkers sets how many documents of one <MergeDir> are parsed
// concurrently. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// NewParser creates a Parser. A nil paths disables the Default* elements.
func NewParser(paths SearchPaths, opts ...Option) *Parser {
	if paths == nil {
		paths = noPaths{}
	}
	p := &Parser{paths: paths, maxDepth: DefaultMaxMergeDepth, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads the root document at path. Problems in merged documents are
// reported as diagnostics; only an unusable root document is an error.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	canonical := canonicalPath(path)
	root, err := readDocument(canonical)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return p.parseRoot(root, canonical), nil
}

// Parse reads a root document from data. path locates the document for
// relative paths, merges and diagnostics; it need not exist.
func (p *Parser) Parse(data []byte, path string) (*ParseResult, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return p.parseRoot(root, canonicalPath(path)), nil
}

func (p *Parser) parseRoot(root element, path string) *ParseResult {
	dp := &docParser{parser: p, doc: document{}.child(path)}
	node := dp.parseMenu(root, scope{})
	slog.Debug("menu document parsed", "path", path, "diagnostics", len(dp.diags))
	return &ParseResult{Root: node, Diagnostics: dp.diags}
}

func readDocument(path string) (element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return element{}, err
	}
	return decodeDocument(data)
}

func decodeDocument(data []byte) (element, error) {
	var root element
	if err := xml.Unmarshal(data, &root); err != nil {
		return element{}, fmt.Errorf("malformed menu document: %w", err)
	}
	if root.XMLName.Local != "Menu" {
		return element{}, fmt.Errorf("%w: root element is <%s>", ErrNotMenuDocument, root.XMLName.Local)
	}
	return root, nil
}

// parseMenu builds the node for one <Menu> element, resolving merges and
// nested menus as they appear.
func (dp *docParser) parseMenu(el element, inherited scope) *Node {
	sc := dp.collectScope(el, inherited)
	node := &Node{
		Source:        dp.doc.path,
		AppDirs:       sc.appDirs,
		DirectoryDirs: sc.directoryDirs,
		MergeDirs:     sc.mergeDirs,
		DefaultLayout: sc.defaultLayout,
	}

	var include, exclude []Condition
	var hasInclude, hasExclude bool
	for _, c := range el.Children {
		switch c.name() {
		case "Name":
			node.Name = c.text()
		case "Directory":
			node.DirectoryName = c.text()
		case "OnlyUnallocated":
			node.OnlyUnallocated = true
		case "NotOnlyUnallocated":
			node.OnlyUnallocated = false
		case "Deleted":
			node.Deleted = true
		case "NotDeleted":
			node.Deleted = false
		case "Include":
			hasInclude = true
			include = append(include, dp.parseConditions(c.Children)...)
		case "Exclude":
			hasExclude = true
			exclude = append(exclude, dp.parseConditions(c.Children)...)
		case "Menu":
			node.Children = append(node.Children, dp.parseMenu(c, sc))
		case "MergeFile":
			dp.merge(node, mergeFileDirective(c), sc)
		case "MergeDir":
			if target := c.text(); target != "" {
				mode := MergeModePath
				if !filepath.IsAbs(target) {
					mode = MergeModeRelative
				}
				dp.merge(node, MergeDirective{Kind: MergeKindDir, Target: target, Mode: mode}, sc)
			}
		case "DefaultMergeDirs":
			for _, dir := range dp.parser.paths.MergeDirs() {
				dp.merge(node, MergeDirective{Kind: MergeKindDir, Target: dir, Mode: MergeModePath}, sc)
			}
		case "Layout":
			node.Layout = dp.parseLayout(c, sc.layoutOptions())
		case "AppDir", "DefaultAppDirs", "DirectoryDir", "DefaultDirectoryDirs", "DefaultLayout":
			// collected by collectScope
		case "LegacyDir", "KDELegacyDirs", "Move":
			slog.Debug("unsupported menu element ignored", "element", c.name(), "path", dp.doc.path)
		default:
			dp.unknown(c)
		}
	}

	if hasInclude {
		node.Include = Or{Children: include}
	}
	if hasExclude {
		node.Exclude = Or{Children: exclude}
	}
	if node.DirectoryName != "" {
		node.Directory = dp.loadDirectory(node.DirectoryName, sc.directoryDirs)
	}
	return node
}

func (dp *docParser) merge(node *Node, d MergeDirective, sc scope) {
	node.Merges = append(node.Merges, d)
	node.Children = append(node.Children, dp.resolveMerge(d, sc)...)
}

// collectScope gathers the search paths and default layout declared directly
// in el, on top of the inherited ones. They apply to the whole menu
// regardless of where they appear in it.
func (dp *docParser) collectScope(el element, inherited scope) scope {
	sc := scope{
		appDirs:       slices.Clone(inherited.appDirs),
		directoryDirs: slices.Clone(inherited.directoryDirs),
		mergeDirs:     slices.Clone(inherited.mergeDirs),
		defaultLayout: inherited.defaultLayout,
	}
	for _, c := range el.Children {
		switch c.name() {
		case "AppDir":
			sc.appDirs = appendUnique(sc.appDirs, dp.resolvePath(c.text())...)
		case "DefaultAppDirs":
			sc.appDirs = appendUnique(sc.appDirs, dp.parser.paths.AppDirs()...)
		case "DirectoryDir":
			sc.directoryDirs = appendUnique(sc.directoryDirs, dp.resolvePath(c.text())...)
		case "DefaultDirectoryDirs":
			sc.directoryDirs = appendUnique(sc.directoryDirs, dp.parser.paths.DirectoryDirs()...)
		case "MergeDir":
			sc.mergeDirs = appendUnique(sc.mergeDirs, dp.resolvePath(c.text())...)
		case "DefaultMergeDirs":
			sc.mergeDirs = appendUnique(sc.mergeDirs, dp.parser.paths.MergeDirs()...)
		case "DefaultLayout":
			sc.defaultLayout = dp.parseLayout(c, sc.layoutOptions())
		}
	}
	return sc
}

// resolvePath makes a declared directory absolute against the document's
// directory. An empty value yields nothing.
func (dp *docParser) resolvePath(p string) []string {
	if p == "" {
		return nil
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dp.doc.dir, p)
	}
	return []string{filepath.Clean(p)}
}

func (dp *docParser) parseConditions(els []element) []Condition {
	out := make([]Condition, 0, len(els))
	for _, el := range els {
		if c, ok := dp.parseCondition(el); ok {
			out = append(out, c)
		}
	}
	return out
}

// parseCondition builds one condition by recursion over the element tree.
func (dp *docParser) parseCondition(el element) (Condition, bool) {
	switch el.name() {
	case "And":
		return And{Children: dp.parseConditions(el.Children)}, true
	case "Or":
		return Or{Children: dp.parseConditions(el.Children)}, true
	case "Not":
		return Not{Children: dp.parseConditions(el.Children)}, true
	case "Category":
		return Predicate{Kind: PredicateCategory, Value: el.text()}, true
	case "Filename":
		return Predicate{Kind: PredicateFilename, Value: el.text()}, true
	case "All":
		return Predicate{Kind: PredicateAll}, true
	default:
		dp.unknown(el)
		return nil, false
	}
}

// parseLayout reads a <Layout> or <DefaultLayout>. Attributes on the element
// refine base.
func (dp *docParser) parseLayout(el element, base InlineOptions) *Layout {
	l := &Layout{
		Entries: make([]LayoutEntry, 0, len(el.Children)),
		Options: base.Apply(inlineOverrides(el)),
	}
	for _, c := range el.Children {
		switch c.name() {
		case "Filename":
			if id := c.text(); id != "" {
				l.Entries = append(l.Entries, ApplicationRef{ID: id})
			}
		case "Menuname":
			if name := c.text(); name != "" {
				l.Entries = append(l.Entries, SubmenuRef{Name: name, Overrides: inlineOverrides(c)})
			}
		case "Separator":
			l.Entries = append(l.Entries, Separator{})
		case "Merge":
			ms := MergeScope(c.attr("type"))
			if ok, _ := ms.IsValid(); !ok {
				dp.unknown(c)
				continue
			}
			l.Entries = append(l.Entries, MergeMarker{Scope: ms})
		default:
			dp.unknown(c)
		}
	}
	return l
}

// loadDirectory loads the first existing candidate for name.
func (dp *docParser) loadDirectory(name string, dirs []string) *desktopentry.Directory {
	candidates := make([]string, 0, len(dirs))
	if filepath.IsAbs(name) {
		candidates = append(candidates, name)
	} else {
		for _, dir := range dirs {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	for _, path := range candidates {
		d, err := desktopentry.LoadDirectory(path)
		if err == nil {
			return d
		}
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("directory entry skipped", "path", path, "error", err)
		}
	}
	dp.diags = append(dp.diags, diagnostic.Warnf(diagnostic.CodeDirectoryNotFound, dp.doc.path,
		"directory entry %q not found in %d directories", name, len(dirs)))
	return nil
}

func (dp *docParser) unknown(el element) {
	dp.diags = append(dp.diags, diagnostic.Warnf(diagnostic.CodeUnknownElement, dp.doc.path,
		"ignored element <%s>", el.name()))
}

func mergeFileDirective(el element) MergeDirective {
	d := MergeDirective{Kind: MergeKindFile, Target: el.text(), Mode: MergeModePath}
	switch {
	case el.attr("type") == string(MergeModeParent):
		d.Mode = MergeModeParent
	case d.Target != "" && !filepath.IsAbs(d.Target):
		d.Mode = MergeModeRelative
	}
	return d
}

// inlineOverrides reads the inline attributes set on el. Values that do not
// parse are treated as unset.
func inlineOverrides(el element) InlineOverrides {
	var ov InlineOverrides
	for _, a := range el.Attrs {
		switch a.Name.Local {
		case "show_empty":
			ov.ShowEmpty = boolAttr(a.Value)
		case "inline":
			ov.Inline = boolAttr(a.Value)
		case "inline_limit":
			if n, err := cast.ToIntE(strings.TrimSpace(a.Value)); err == nil {
				ov.InlineLimit = &n
			}
		case "inline_header":
			ov.InlineHeader = boolAttr(a.Value)
		case "inline_alias":
			ov.InlineAlias = boolAttr(a.Value)
		}
	}
	return ov
}

func boolAttr(v string) *bool {
	b, err := cast.ToBoolE(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &b
}

func (sc scope) layoutOptions() InlineOptions {
	if sc.defaultLayout != nil {
		return sc.defaultLayout.Options
	}
	return DefaultInlineOptions()
}

func (d document) child(path string) document {
	return document{path: path, dir: filepath.Dir(path), stack: append(slices.Clone(d.stack), path)}
}

func (e element) name() string { return e.XMLName.Local }

func (e element) text() string { return strings.TrimSpace(e.CharData) }

func (e element) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("menu document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

func (noPaths) AppDirs() []string       { return nil }
func (noPaths) DirectoryDirs() []string { return nil }
func (noPaths) MergeDirs() []string     { return nil }
func (noPaths) MenuDirs() []string      { return nil }

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(list, it) {
			list = append(list, it)
		}
	}
	return list
}
