// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"log/slog"
	"slices"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
)

type (
	// Catalog enumerates the application records available to a build.
	Catalog interface {
		All() []*desktopentry.Entry
	}

	// BuildOptions controls presentation filtering.
	BuildOptions struct {
		// Desktops is the current desktop environment list used by
		// OnlyShowIn and NotShowIn.
		Desktops []string
		// ShowHidden presents NoDisplay records, records meant for other
		// desktops and NoDisplay directories.
		ShowHidden bool
	}
)

// Build resolves the tree rooted at root against catalog. It assigns matching
// applications to every node, prunes <Deleted> menus, withholds applications
// allocated elsewhere from <OnlyUnallocated> menus, and finally arranges each
// node's Entries bottom-up.
func Build(root *Node, catalog Catalog, opts BuildOptions) {
	if root == nil {
		return
	}

	apps := catalog.All()
	root.Walk(func(n *Node) { assign(n, apps) })

	pruneDeleted(root)

	allocated := make(map[*desktopentry.Entry]bool)
	root.Walk(func(n *Node) {
		if n.OnlyUnallocated {
			return
		}
		for _, app := range n.Apps {
			allocated[app] = true
		}
	})
	root.Walk(func(n *Node) {
		if n.OnlyUnallocated {
			n.Apps = slices.DeleteFunc(n.Apps, func(app *desktopentry.Entry) bool { return allocated[app] })
		}
	})

	arrange(root, opts)
	slog.Debug("menu tree built", "menu", root.Name, "entries", len(root.Entries), "allocated", len(allocated))
}

// assign collects the records n matches. Hidden records count as deleted and
// never match.
func assign(n *Node, apps []*desktopentry.Entry) {
	n.Apps = nil
	n.Entries = nil
	for _, app := range apps {
		if !app.Hidden && n.Matches(app) {
			n.Apps = append(n.Apps, app)
		}
	}
}

func pruneDeleted(n *Node) {
	n.Children = slices.DeleteFunc(n.Children, func(c *Node) bool { return c.Deleted })
	for _, c := range n.Children {
		pruneDeleted(c)
	}
}

// arrange computes Entries for the children of n, then for n.
func arrange(n *Node, opts BuildOptions) {
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		arrange(c, opts)
		if opts.ShowHidden || c.Directory == nil || !c.Directory.NoDisplay {
			children = append(children, c)
		}
	}

	apps := n.Apps
	if !opts.ShowHidden {
		apps = make([]*desktopentry.Entry, 0, len(n.Apps))
		for _, app := range n.Apps {
			if app.Visible(opts.Desktops) {
				apps = append(apps, app)
			}
		}
	}

	directives, inline := n.layoutPlan()
	n.Entries = Arrange(directives, inline, children, apps)
}

// layoutPlan returns the directives and inline options that arrange n: its
// own <Layout>, else the effective <DefaultLayout>, else the implicit layout.
func (n *Node) layoutPlan() ([]LayoutEntry, InlineOptions) {
	inline := DefaultInlineOptions()
	if n.DefaultLayout != nil {
		inline = n.DefaultLayout.Options
	}
	switch {
	case n.Layout != nil && len(n.Layout.Entries) > 0:
		return n.Layout.Entries, n.Layout.Options
	case n.DefaultLayout != nil:
		return n.DefaultLayout.Entries, inline
	default:
		return nil, inline
	}
}
