// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"strings"
	"testing"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
	"github.com/xdgmenu/xdgmenu/pkg/keyfile"
)

type (
	staticCatalog []*desktopentry.Entry

	staticPaths struct {
		apps, directories, merges, menus []string
	}
)

func (c staticCatalog) All() []*desktopentry.Entry { return c }

func (p staticPaths) AppDirs() []string       { return p.apps }
func (p staticPaths) DirectoryDirs() []string { return p.directories }
func (p staticPaths) MergeDirs() []string     { return p.merges }
func (p staticPaths) MenuDirs() []string      { return p.menus }

// newApp builds an application record in memory. Extra lines are appended to
// the [Desktop Entry] section.
func newApp(t *testing.T, id, name string, categories []string, extra ...string) *desktopentry.Entry {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("[Desktop Entry]\nType=Application\n")
	sb.WriteString("Name=" + name + "\n")
	sb.WriteString("Exec=" + strings.TrimSuffix(id, ".desktop") + "\n")
	if len(categories) > 0 {
		sb.WriteString("Categories=" + strings.Join(categories, ";") + ";\n")
	}
	for _, line := range extra {
		sb.WriteString(line + "\n")
	}
	e, err := desktopentry.Parse(id, "/usr/share/applications/"+id, keyfile.ParseString(sb.String()))
	if err != nil {
		t.Fatalf("desktopentry.Parse(%s) error: %v", id, err)
	}
	return e
}

// menuWithEntries returns a node that already carries n application entries.
func menuWithEntries(t *testing.T, name string, n int) *Node {
	t.Helper()
	node := &Node{Name: name}
	for i := range n {
		app := newApp(t, strings.ToLower(name)+string(rune('a'+i))+".desktop", name+string(rune('A'+i)), nil)
		node.Entries = append(node.Entries, Entry{Kind: EntryApplication, App: app})
	}
	return node
}

func entryNames(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		switch e.Kind {
		case EntrySeparator:
			out[i] = "---"
		case EntryHeader:
			out[i] = "# " + e.Label
		default:
			out[i] = e.Name()
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
