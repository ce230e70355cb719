// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"fmt"
	"io"
	"strings"
)

type (
	// Snapshot is a serializable view of a built menu tree.
	Snapshot struct {
		Name            string          `json:"name" toml:"name"`
		Caption         string          `json:"caption,omitempty" toml:"caption,omitempty"`
		Icon            string          `json:"icon,omitempty" toml:"icon,omitempty"`
		Source          string          `json:"source,omitempty" toml:"source,omitempty"`
		Include         string          `json:"include" toml:"include"`
		Exclude         string          `json:"exclude" toml:"exclude"`
		OnlyUnallocated bool            `json:"only_unallocated,omitempty" toml:"only_unallocated,omitempty"`
		Entries         []SnapshotEntry `json:"entries,omitempty" toml:"entries,omitempty"`
		Submenus        []Snapshot      `json:"submenus,omitempty" toml:"submenus,omitempty"`
	}

	// SnapshotEntry is one presented entry of a Snapshot.
	SnapshotEntry struct {
		Kind string `json:"kind" toml:"kind"`
		ID   string `json:"id,omitempty" toml:"id,omitempty"`
		Name string `json:"name,omitempty" toml:"name,omitempty"`
		Icon string `json:"icon,omitempty" toml:"icon,omitempty"`
		Exec string `json:"exec,omitempty" toml:"exec,omitempty"`
	}
)

// NewSnapshot captures the tree rooted at n. Entries are only meaningful after
// Build.
func NewSnapshot(n *Node) Snapshot {
	s := Snapshot{
		Name:            n.Name,
		Caption:         n.DisplayName(),
		Icon:            n.Icon(),
		Source:          n.Source,
		Include:         Summary(n.Include),
		Exclude:         Summary(n.Exclude),
		OnlyUnallocated: n.OnlyUnallocated,
	}
	for _, e := range n.Entries {
		se := SnapshotEntry{Kind: e.Kind.String(), Name: e.Name()}
		switch e.Kind {
		case EntrySubmenu:
			se.ID = e.Menu.Name
			se.Icon = e.Menu.Icon()
		case EntryApplication:
			se.ID = e.App.ID
			se.Icon = e.App.Icon
			se.Exec = e.App.Exec
		}
		s.Entries = append(s.Entries, se)
	}
	for _, c := range n.Children {
		s.Submenus = append(s.Submenus, NewSnapshot(c))
	}
	return s
}

// Dump writes an indented text rendering of the tree rooted at n: each menu's
// name, rule summaries, entries and submenus.
func Dump(w io.Writer, n *Node) error {
	var b strings.Builder
	dumpNode(&b, n, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpNode(b *strings.Builder, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	name := n.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(b, "%smenu %s\n", pad, name)
	fmt.Fprintf(b, "%s  include %s\n", pad, Summary(n.Include))
	fmt.Fprintf(b, "%s  exclude %s\n", pad, Summary(n.Exclude))
	if n.OnlyUnallocated {
		fmt.Fprintf(b, "%s  only-unallocated\n", pad)
	}
	for _, e := range n.Entries {
		switch e.Kind {
		case EntrySeparator:
			fmt.Fprintf(b, "%s  entry separator\n", pad)
		case EntryHeader:
			fmt.Fprintf(b, "%s  entry header %q\n", pad, e.Label)
		default:
			line := fmt.Sprintf("%s  entry %s %s", pad, e.Kind, e.ID())
			if e.Label != "" {
				line += fmt.Sprintf(" as %q", e.Label)
			}
			b.WriteString(line + "\n")
		}
	}
	for _, c := range n.Children {
		dumpNode(b, c, depth+1)
	}
}
