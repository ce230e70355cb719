// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
)

const (
	// MergeSubmenus places every not yet placed submenu.
	MergeSubmenus MergeScope = "menus"
	// MergeApplications places every not yet placed application.
	MergeApplications MergeScope = "files"
	// MergeAll places every not yet placed submenu and application, by name.
	MergeAll MergeScope = "all"
)

const (
	// EntrySubmenu is a nested menu.
	EntrySubmenu EntryKind = iota
	// EntryApplication is a launchable application.
	EntryApplication
	// EntrySeparator is a visual separator.
	EntrySeparator
	// EntryHeader captions the entries of an inlined submenu.
	EntryHeader
)

// ErrInvalidMergeScope is returned when a MergeScope value is not recognized.
var ErrInvalidMergeScope = errors.New("invalid merge scope")

type (
	// LayoutEntry is one layout directive. The implementations are SubmenuRef,
	// MergeMarker, Separator and ApplicationRef.
	LayoutEntry interface {
		layoutEntry()
	}

	// SubmenuRef places the child menu with the given name.
	SubmenuRef struct {
		Name      string
		Overrides InlineOverrides
	}

	// MergeScope selects what a MergeMarker places.
	MergeScope string

	// MergeMarker places every item of Scope not placed yet.
	MergeMarker struct {
		Scope MergeScope
	}

	// Separator places a separator.
	Separator struct{}

	// ApplicationRef places the matched application with the given identifier.
	ApplicationRef struct {
		ID string
	}

	// EntryKind tags an Entry.
	EntryKind int

	// Entry is one item of a menu's presentable sequence.
	Entry struct {
		Kind EntryKind
		// Menu is set for EntrySubmenu and EntryHeader.
		Menu *Node
		// App is set for EntryApplication.
		App *desktopentry.Entry
		// Label overrides the caption (inline headers and aliases).
		Label string
		// Origin is the inlined submenu the entry was spliced from.
		Origin *Node
	}

	// arranger accumulates entries with identity-based deduplication.
	arranger struct {
		opts     InlineOptions
		children []*Node
		apps     []*desktopentry.Entry
		out      []Entry
		placed   map[any]bool
	}
)

func (SubmenuRef) layoutEntry()     {}
func (MergeMarker) layoutEntry()    {}
func (Separator) layoutEntry()      {}
func (ApplicationRef) layoutEntry() {}

// DefaultLayout returns the directive list equivalent to the implicit
// layout: submenus first, then applications.
func DefaultLayout() []LayoutEntry {
	return []LayoutEntry{MergeMarker{Scope: MergeSubmenus}, MergeMarker{Scope: MergeApplications}}
}

// Arrange produces the presentable sequence for one menu. Merge markers place
// submenus in name order and applications in display-name order. When
// directives is empty the implicit layout applies: every submenu, then every
// application. children must already carry their own Entries.
//
// An item referenced again by a later directive moves to the later position.
// Submenus without entries are omitted unless ShowEmpty is in effect.
func Arrange(directives []LayoutEntry, opts InlineOptions, children []*Node, apps []*desktopentry.Entry) []Entry {
	a := &arranger{
		opts:     opts,
		children: slices.Clone(children),
		apps:     sortedApps(apps),
		placed:   make(map[any]bool),
	}
	slices.SortStableFunc(a.children, func(x, y *Node) int { return compareNames(x.Name, y.Name) })
	if len(directives) == 0 {
		directives = DefaultLayout()
	}

	for _, d := range directives {
		switch d := d.(type) {
		case MergeMarker:
			a.merge(d.Scope)
		case SubmenuRef:
			if child := a.child(d.Name); child != nil {
				a.placeSubmenu(child, a.opts.Apply(d.Overrides))
			}
		case ApplicationRef:
			if app := a.app(d.ID); app != nil {
				a.place(Entry{Kind: EntryApplication, App: app})
			}
		case Separator:
			a.out = append(a.out, Entry{Kind: EntrySeparator})
		}
	}

	return a.out
}

func (a *arranger) merge(scope MergeScope) {
	switch scope {
	case MergeSubmenus:
		for _, c := range a.children {
			if !a.placed[c] {
				a.placeSubmenu(c, a.opts)
			}
		}
	case MergeApplications:
		for _, app := range a.apps {
			if !a.placed[app] {
				a.place(Entry{Kind: EntryApplication, App: app})
			}
		}
	case MergeAll:
		type named struct {
			name string
			menu *Node
			app  *desktopentry.Entry
		}
		var items []named
		for _, c := range a.children {
			if !a.placed[c] {
				items = append(items, named{name: c.Name, menu: c})
			}
		}
		for _, app := range a.apps {
			if !a.placed[app] {
				items = append(items, named{name: app.DisplayName(), app: app})
			}
		}
		slices.SortStableFunc(items, func(x, y named) int { return compareNames(x.name, y.name) })
		for _, it := range items {
			if it.menu != nil {
				a.placeSubmenu(it.menu, a.opts)
			} else {
				a.place(Entry{Kind: EntryApplication, App: it.app})
			}
		}
	}
}

// placeSubmenu places child as a nested menu, or splices its entries when
// inlining applies.
func (a *arranger) placeSubmenu(child *Node, o InlineOptions) {
	a.remove(child)
	a.placed[child] = true

	if len(child.Entries) == 0 && !o.ShowEmpty {
		return
	}
	if !o.Inline || len(child.Entries) == 0 || !o.fits(len(child.Entries)) {
		a.out = append(a.out, Entry{Kind: EntrySubmenu, Menu: child})
		return
	}

	if o.InlineAlias && len(child.Entries) == 1 {
		e := child.Entries[0]
		e.Label = child.DisplayName()
		e.Origin = child
		a.place(e)
		return
	}
	if o.InlineHeader {
		a.out = append(a.out, Entry{Kind: EntryHeader, Menu: child, Label: child.DisplayName(), Origin: child})
	}
	for _, e := range child.Entries {
		e.Origin = child
		a.place(e)
	}
}

// place appends e, first removing an earlier occurrence of the same item.
func (a *arranger) place(e Entry) {
	if id := e.identity(); id != nil {
		a.remove(id)
		a.placed[id] = true
	}
	a.out = append(a.out, e)
}

// remove drops the earlier occurrence of id. For a submenu this includes
// every entry spliced from it when it was inlined; spliced items become
// unplaced again.
func (a *arranger) remove(id any) {
	if !a.placed[id] {
		return
	}
	menu, _ := id.(*Node)
	a.out = slices.DeleteFunc(a.out, func(e Entry) bool {
		if e.identity() == id {
			return true
		}
		if menu == nil || e.Origin != menu {
			return false
		}
		if sid := e.identity(); sid != nil {
			delete(a.placed, sid)
		}
		return true
	})
}

func (a *arranger) child(name string) *Node {
	for _, c := range a.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (a *arranger) app(id string) *desktopentry.Entry {
	for _, app := range a.apps {
		if app.ID == id {
			return app
		}
	}
	return nil
}

// identity returns the value used to deduplicate e, nil for separators and headers.
func (e Entry) identity() any {
	switch e.Kind {
	case EntrySubmenu:
		return e.Menu
	case EntryApplication:
		return e.App
	default:
		return nil
	}
}

// Name returns the caption of the entry.
func (e Entry) Name() string {
	if e.Label != "" {
		return e.Label
	}
	switch e.Kind {
	case EntrySubmenu:
		return e.Menu.DisplayName()
	case EntryApplication:
		return e.App.DisplayName()
	default:
		return ""
	}
}

// ID returns the identifier used in dumps: the application identifier, the
// menu name, or "---" for separators.
func (e Entry) ID() string {
	switch e.Kind {
	case EntrySubmenu:
		return e.Menu.Name
	case EntryApplication:
		return e.App.ID
	case EntryHeader:
		return "# " + e.Label
	default:
		return "---"
	}
}

// String returns the kind name.
func (k EntryKind) String() string {
	switch k {
	case EntrySubmenu:
		return "submenu"
	case EntryApplication:
		return "application"
	case EntrySeparator:
		return "separator"
	case EntryHeader:
		return "header"
	default:
		return "unknown"
	}
}

// IsValid returns whether the MergeScope is recognized.
func (s MergeScope) IsValid() (bool, []error) {
	switch s {
	case MergeSubmenus, MergeApplications, MergeAll:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidMergeScope, s)}
	}
}

func sortedApps(apps []*desktopentry.Entry) []*desktopentry.Entry {
	out := slices.Clone(apps)
	slices.SortStableFunc(out, func(x, y *desktopentry.Entry) int {
		if c := compareNames(x.DisplayName(), y.DisplayName()); c != 0 {
			return c
		}
		return strings.Compare(x.ID, y.ID)
	})
	return out
}

// compareNames orders case-insensitively, breaking ties by byte order.
func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
