// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
)

// DefaultInlineLimit is the inline_limit used when none is given.
const DefaultInlineLimit = 4

type (
	// Node is one menu in the resolved tree. Children are owned by their parent.
	Node struct {
		// Name is the <Name> of the menu; empty for anonymous menus.
		Name string
		// DirectoryName is the raw <Directory> value.
		DirectoryName string
		// Directory is the loaded directory metadata, nil when none was found.
		Directory *desktopentry.Directory

		// Include selects applications; nil matches nothing.
		Include Condition
		// Exclude removes applications selected by Include; nil removes nothing.
		Exclude Condition

		OnlyUnallocated bool
		Deleted         bool

		// Layout is the explicit <Layout>, nil when absent.
		Layout *Layout
		// DefaultLayout is the <DefaultLayout>, inherited by descendants; nil when absent.
		DefaultLayout *Layout

		// Merges records the merge directives found in the menu, in document order.
		Merges []MergeDirective

		// AppDirs, DirectoryDirs and MergeDirs are the effective search paths.
		AppDirs       []string
		DirectoryDirs []string
		MergeDirs     []string

		// Source is the document the menu was read from.
		Source string

		Children []*Node

		// Apps holds the matched application records after Build.
		Apps []*desktopentry.Entry
		// Entries is the presentable sequence after Build.
		Entries []Entry
	}

	// InlineOptions controls how a submenu reference is presented.
	InlineOptions struct {
		ShowEmpty    bool
		Inline       bool
		InlineLimit  int
		InlineHeader bool
		InlineAlias  bool
	}

	// InlineOverrides are the options set explicitly on one <Menuname> or
	// <DefaultLayout>. Nil fields inherit.
	InlineOverrides struct {
		ShowEmpty    *bool
		Inline       *bool
		InlineLimit  *int
		InlineHeader *bool
		InlineAlias  *bool
	}

	// Layout is an ordered directive list plus the inline options in effect
	// for submenus it places.
	Layout struct {
		Entries []LayoutEntry
		Options InlineOptions
	}
)

// DefaultInlineOptions returns the options used when no <DefaultLayout> applies.
func DefaultInlineOptions() InlineOptions {
	return InlineOptions{InlineLimit: DefaultInlineLimit}
}

// Apply returns o with every set override replacing the inherited value.
func (o InlineOptions) Apply(ov InlineOverrides) InlineOptions {
	if ov.ShowEmpty != nil {
		o.ShowEmpty = *ov.ShowEmpty
	}
	if ov.Inline != nil {
		o.Inline = *ov.Inline
	}
	if ov.InlineLimit != nil {
		o.InlineLimit = *ov.InlineLimit
	}
	if ov.InlineHeader != nil {
		o.InlineHeader = *ov.InlineHeader
	}
	if ov.InlineAlias != nil {
		o.InlineAlias = *ov.InlineAlias
	}
	return o
}

// fits reports whether n entries may be inlined. A limit of 0 means no limit.
func (o InlineOptions) fits(n int) bool {
	return o.InlineLimit <= 0 || n <= o.InlineLimit
}

// DisplayName returns the directory caption when present, else the menu name.
func (n *Node) DisplayName() string {
	if n.Directory != nil && n.Directory.Name != "" {
		return n.Directory.Name
	}
	return n.Name
}

// Icon returns the directory icon reference, if any.
func (n *Node) Icon() string {
	if n.Directory != nil {
		return n.Directory.Icon
	}
	return ""
}

// Matches reports whether app belongs to the menu by its own rules:
// Include matches and Exclude does not.
func (n *Node) Matches(app *desktopentry.Entry) bool {
	return Evaluate(n.Include, app) && !Evaluate(n.Exclude, app)
}

// Child returns the first direct child named name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the descendant at the given name path, or nil.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Walk calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
