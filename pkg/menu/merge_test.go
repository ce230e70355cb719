// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xdgmenu/xdgmenu/internal/testutil"
	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"
)

func TestMergeFile_Resolution(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteMenu(t, filepath.Join(dir, "office.menu"), `<Name>Office</Name>
  <Include><Category>Office</Category></Include>`)
	testutil.WriteMenu(t, filepath.Join(dir, "sub", "games.menu"), `<Name>Games</Name>`)
	root := testutil.WriteMenu(t, filepath.Join(dir, "root.menu"), `<Name>Root</Name>
  <MergeFile>/nonexistent/office.menu</MergeFile>
  <MergeFile type="path">sub/games.menu</MergeFile>
  <MergeFile>absent.menu</MergeFile>`)

	res, err := NewParser(nil).ParseFile(root)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}

	if len(res.Root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(res.Root.Children))
	}
	office := res.Root.Children[0]
	if office.Name != "Office" || Summary(office.Include) != "Or(Category=Office)" {
		t.Errorf("sibling fallback merged %+v, want the Office menu with its rules", office)
	}
	if res.Root.Children[1].Name != "Games" {
		t.Errorf("relative merge = %q, want Games", res.Root.Children[1].Name)
	}
	if got := diagnostic.Filter(res.Diagnostics, diagnostic.CodeMergeTargetMissing); len(got) != 1 {
		t.Errorf("missing target diagnostics = %v, want 1", got)
	}

	want := []MergeDirective{
		{Kind: MergeKindFile, Target: "/nonexistent/office.menu", Mode: MergeModePath},
		{Kind: MergeKindFile, Target: "sub/games.menu", Mode: MergeModeRelative},
		{Kind: MergeKindFile, Target: "absent.menu", Mode: MergeModeRelative},
	}
	if fmt.Sprint(res.Root.Merges) != fmt.Sprint(want) {
		t.Errorf("Merges = %v, want %v", res.Root.Merges, want)
	}
}

func TestMergeFile_Parent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	userMenus := filepath.Join(dir, "home", "menus")
	systemMenus := filepath.Join(dir, "etc", "menus")
	testutil.WriteMenu(t, filepath.Join(systemMenus, "applications.menu"), `<Name>System</Name>`)
	root := testutil.WriteMenu(t, filepath.Join(userMenus, "applications.menu"), `<Name>User</Name>
  <MergeFile type="parent"/>`)

	paths := staticPaths{menus: []string{userMenus, systemMenus}}
	res, err := NewParser(paths).ParseFile(root)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(res.Root.Children) != 1 || res.Root.Children[0].Name != "System" {
		t.Fatalf("children = %+v, want the System menu", res.Root.Children)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestMergeFile_CycleGuard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteMenu(t, filepath.Join(dir, "b.menu"), `<Name>B</Name>
  <MergeFile>a.menu</MergeFile>`)
	a := testutil.WriteMenu(t, filepath.Join(dir, "a.menu"), `<Name>A</Name>
  <MergeFile>b.menu</MergeFile>
  <MergeFile>a.menu</MergeFile>
  <Menu><Name>Still</Name></Menu>`)

	res, err := NewParser(nil).ParseFile(a)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}

	root := res.Root
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(root.Children))
	}
	b := root.Children[0]
	if b.Name != "B" || len(b.Children) != 1 {
		t.Fatalf("B = %+v, want one child", b)
	}
	for _, empty := range []*Node{b.Children[0], root.Children[1]} {
		if empty.Name != "" || len(empty.Children) != 0 || empty.Include != nil {
			t.Errorf("cyclic merge produced %+v, want an empty node", empty)
		}
	}
	if root.Children[2].Name != "Still" {
		t.Errorf("rest of the tree lost: %+v", root.Children[2])
	}

	cycles := diagnostic.Filter(res.Diagnostics, diagnostic.CodeMergeCycle)
	if len(cycles) != 2 {
		t.Fatalf("cycle diagnostics = %v, want 2", cycles)
	}
	if cycles[0].Severity != diagnostic.SeverityError {
		t.Errorf("severity = %s, want error", cycles[0].Severity)
	}
}

func TestMergeFile_DepthBound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		testutil.WriteMenu(t, filepath.Join(dir, fmt.Sprintf("m%d.menu", i)),
			fmt.Sprintf("<Name>M%d</Name>\n<MergeFile>m%d.menu</MergeFile>", i, i+1))
	}
	root := testutil.WriteMenu(t, filepath.Join(dir, "m0.menu"), "<Name>M0</Name>\n<MergeFile>m1.menu</MergeFile>")

	res, err := NewParser(nil, WithMaxMergeDepth(2)).ParseFile(root)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if res.Root.Find("M1", "M2") == nil {
		t.Fatal("merges within the bound were not resolved")
	}
	if got := diagnostic.Filter(res.Diagnostics, diagnostic.CodeMergeDepthExceeded); len(got) != 1 {
		t.Errorf("depth diagnostics = %v, want 1", got)
	}
}

func TestMergeDir_Order(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			merged := filepath.Join(dir, "applications-merged")
			for _, name := range []string{"c", "a", "b"} {
				testutil.WriteMenu(t, filepath.Join(merged, name+".menu"), "<Name>"+name+"</Name>")
			}
			testutil.MustWriteFile(t, filepath.Join(merged, "notes.txt"), "not a menu")
			testutil.MustWriteFile(t, filepath.Join(merged, "broken.menu"), "<Menu>")
			root := testutil.WriteMenu(t, filepath.Join(dir, "root.menu"), `<Name>Root</Name>
  <MergeDir>applications-merged</MergeDir>
  <MergeDir>absent-dir</MergeDir>`)

			res, err := NewParser(nil, WithWorkers(workers)).ParseFile(root)
			if err != nil {
				t.Fatalf("ParseFile() error: %v", err)
			}
			var names []string
			for _, c := range res.Root.Children {
				names = append(names, c.Name)
			}
			if fmt.Sprint(names) != "[a b c]" {
				t.Errorf("children = %v, want [a b c]", names)
			}
			failed := diagnostic.Filter(res.Diagnostics, diagnostic.CodeMergeParseFailed)
			if len(failed) != 1 || failed[0].Cause == nil {
				t.Errorf("parse failure diagnostics = %v, want 1 with cause", failed)
			}
			if len(res.Root.MergeDirs) != 2 {
				t.Errorf("MergeDirs = %v, want both declared directories", res.Root.MergeDirs)
			}
		})
	}
}

func TestMergeDir_Location(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	local := filepath.Join(dir, "merged")
	testutil.WriteMenu(t, filepath.Join(local, "local.menu"), "<Name>Local</Name>")
	elsewhere := filepath.Join(t.TempDir(), "shared")
	testutil.WriteMenu(t, filepath.Join(elsewhere, "shared.menu"), "<Name>Shared</Name>")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"relative", "merged", "[Local]"},
		{"absolute existing", elsewhere, "[Shared]"},
		{"absolute missing falls back to document directory", filepath.Join(t.TempDir(), "gone", "merged"), "[Local]"},
		{"absolute missing without local copy", filepath.Join(t.TempDir(), "nowhere"), "[]"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := testutil.WriteMenu(t, filepath.Join(dir, fmt.Sprintf("root-%d.menu", i)), "<Name>Root</Name>\n  <MergeDir>"+tt.target+"</MergeDir>")

			res, err := NewParser(nil).ParseFile(root)
			if err != nil {
				t.Fatalf("ParseFile() error: %v", err)
			}
			var names []string
			for _, c := range res.Root.Children {
				names = append(names, c.Name)
			}
			if got := fmt.Sprint(names); got != tt.want {
				t.Errorf("children = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestMergeKindAndMode_IsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := MergeKindDir.IsValid(); !ok {
		t.Error("MergeKindDir.IsValid() = false")
	}
	if ok, errs := MergeKind("link").IsValid(); ok || !errors.Is(errs[0], ErrInvalidMergeKind) {
		t.Errorf("MergeKind(link).IsValid() = %v, %v", ok, errs)
	}
	if ok, _ := MergeModeParent.IsValid(); !ok {
		t.Error("MergeModeParent.IsValid() = false")
	}
	if ok, errs := MergeMode("glob").IsValid(); ok || !errors.Is(errs[0], ErrInvalidMergeMode) {
		t.Errorf("MergeMode(glob).IsValid() = %v, %v", ok, errs)
	}
}
