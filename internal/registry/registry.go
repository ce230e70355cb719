// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"slices"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
)

// Registry is a read-only index of application records.
type Registry struct {
	dirs    []string
	byID    map[string]*desktopentry.Entry
	ordered []*desktopentry.Entry
}

// NewFromEntries builds a Registry from already decoded records. The first
// record for an identifier wins.
func NewFromEntries(entries ...*desktopentry.Entry) *Registry {
	r := &Registry{byID: make(map[string]*desktopentry.Entry, len(entries))}
	for _, e := range entries {
		r.add(e)
	}
	r.seal()
	return r
}

// add registers e unless its identifier is already claimed. It reports whether
// e was registered.
func (r *Registry) add(e *desktopentry.Entry) bool {
	if _, exists := r.byID[e.ID]; exists {
		return false
	}
	r.byID[e.ID] = e
	r.ordered = append(r.ordered, e)
	return true
}

func (r *Registry) seal() {
	slices.SortFunc(r.ordered, func(a, b *desktopentry.Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
}

// Lookup returns the record registered under id.
func (r *Registry) Lookup(id string) (*desktopentry.Entry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// All returns every registered record ordered by identifier. The slice is a
// copy; the records are shared.
func (r *Registry) All() []*desktopentry.Entry {
	return slices.Clone(r.ordered)
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Dirs returns the search directories the registry was loaded from.
func (r *Registry) Dirs() []string {
	return slices.Clone(r.dirs)
}
