// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xdgmenu/xdgmenu/internal/testutil"
	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
	"github.com/xdgmenu/xdgmenu/pkg/diagnostic"
)

func TestLoad_FirstDirectoryWins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	userDir := filepath.Join(root, "user")
	sysDir := filepath.Join(root, "sys")
	testutil.WriteDesktopEntry(t, userDir, "editor.desktop", "User Editor", []string{"Utility"})
	testutil.WriteDesktopEntry(t, sysDir, "editor.desktop", "System Editor", []string{"Utility"})
	testutil.WriteDesktopEntry(t, sysDir, "vlc.desktop", "VLC", []string{"AudioVideo"})

	r, diags, err := Load(context.Background(), []string{userDir, sysDir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	e, ok := r.Lookup("editor.desktop")
	if !ok || e.Name != "User Editor" {
		t.Errorf("Lookup(editor.desktop) = %+v, want the user copy", e)
	}
	if shadowed := diagnostic.Filter(diags, diagnostic.CodeAppRecordShadowed); len(shadowed) != 1 {
		t.Errorf("shadowed diagnostics = %v, want 1", shadowed)
	}
}

func TestLoad_SubdirectoryPrefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteDesktopEntry(t, filepath.Join(dir, "kde"), "konsole.desktop", "Konsole", []string{"System"})

	r, _, err := Load(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := r.Lookup("kde-konsole.desktop"); !ok {
		t.Errorf("expected kde-konsole.desktop, have %v", r.All())
	}
}

func TestLoad_SkipsInvalidRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "empty.desktop"), "")
	testutil.MustWriteFile(t, filepath.Join(dir, "nomain.desktop"), "[Other]\nName=x\n")
	testutil.MustWriteFile(t, filepath.Join(dir, "link.desktop"), "[Desktop Entry]\nType=Link\nURL=https://example.com\n")
	testutil.MustWriteFile(t, filepath.Join(dir, "notes.txt"), "[Desktop Entry]\nType=Application\n")
	testutil.WriteDesktopEntry(t, dir, "good.desktop", "Good", nil)

	r, diags, err := Load(context.Background(), []string{dir, filepath.Join(dir, "missing")})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (%v)", r.Len(), r.All())
	}
	if got := len(diagnostic.Filter(diags, diagnostic.CodeKeyfileUnreadable)); got != 1 {
		t.Errorf("unreadable diagnostics = %d, want 1", got)
	}
	if got := len(diagnostic.Filter(diags, diagnostic.CodeAppRecordSkipped)); got != 2 {
		t.Errorf("skipped diagnostics = %d, want 2", got)
	}
}

func TestLoad_HiddenRecordMasksLowerCopy(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	userDir := filepath.Join(root, "user")
	sysDir := filepath.Join(root, "sys")
	testutil.MustWriteFile(t, filepath.Join(userDir, "games.desktop"), "[Desktop Entry]\nHidden=true\n")
	testutil.WriteDesktopEntry(t, sysDir, "games.desktop", "Games", []string{"Game"})

	r, _, err := Load(context.Background(), []string{userDir, sysDir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	e, ok := r.Lookup("games.desktop")
	if !ok || !e.Hidden {
		t.Errorf("Lookup(games.desktop) = %+v, want the hidden user copy", e)
	}
}

func TestLoad_OrderIsStableAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, id := range []string{"c.desktop", "a.desktop", "b.desktop", "e.desktop", "d.desktop"} {
		testutil.WriteDesktopEntry(t, dir, id, id, nil)
	}

	var previous []string
	for _, workers := range []int{1, 3, 16} {
		r, _, err := Load(context.Background(), []string{dir}, WithWorkers(workers))
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		var ids []string
		for _, e := range r.All() {
			ids = append(ids, e.ID)
		}
		if ids[0] != "a.desktop" || ids[4] != "e.desktop" {
			t.Errorf("workers=%d: All() not ordered by id: %v", workers, ids)
		}
		if previous != nil && len(previous) != len(ids) {
			t.Errorf("workers=%d: %v differs from %v", workers, ids, previous)
		}
		previous = ids
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Load(ctx, []string{t.TempDir()}); err == nil {
		t.Error("Load() with canceled context should fail")
	}
}

func TestNewFromEntries(t *testing.T) {
	t.Parallel()

	r := NewFromEntries(
		&desktopentry.Entry{ID: "b.desktop", Name: "first"},
		&desktopentry.Entry{ID: "a.desktop"},
		&desktopentry.Entry{ID: "b.desktop", Name: "second"},
	)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if e, _ := r.Lookup("b.desktop"); e.Name != "first" {
		t.Errorf("first entry should win, got %q", e.Name)
	}
	if all := r.All(); all[0].ID != "a.desktop" {
		t.Errorf("All()[0] = %s, want a.desktop", all[0].ID)
	}
}
