// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xdgmenu/xdgmenu/pkg/keyfile"
)

func mustParse(t *testing.T, id, content string) *Entry {
	t.Helper()
	e, err := Parse(id, "/apps/"+id, keyfile.ParseString(content))
	if err != nil {
		t.Fatalf("Parse(%s) error: %v", id, err)
	}
	return e
}

func TestParse_Fields(t *testing.T) {
	t.Parallel()

	e := mustParse(t, "vlc.desktop", `[Desktop Entry]
Type=Application
Name=VLC media player
Generic Name=Media player
Icon=vlc
Exec=/usr/bin/vlc --started-from-file %U
Categories=AudioVideo;Player;Video;
MimeType=video/mp4;audio/ogg;
Terminal=false
StartupNotify=true
StartupWMClass=vlc
OnlyShowIn=GNOME;KDE;
`)

	if e.Name != "VLC media player" || e.GenericName != "Media player" || e.Icon != "vlc" {
		t.Errorf("unexpected captions: %+v", e)
	}
	if !e.IsApplication() {
		t.Errorf("Type = %q, want Application", e.Type)
	}
	if !slices.Equal(e.Categories, []string{"AudioVideo", "Player", "Video"}) {
		t.Errorf("Categories = %v", e.Categories)
	}
	if !e.HasCategory("Player") || e.HasCategory("Office") {
		t.Error("HasCategory mismatch")
	}
	if len(e.MimeTypes) != 2 || !e.StartupNotify || e.Terminal || e.StartupWMClass != "vlc" {
		t.Errorf("unexpected flags: %+v", e)
	}
}

func TestEntry_HasCategoryLiteral(t *testing.T) {
	t.Parallel()

	e := &Entry{ID: "x.desktop", Name: "X", Categories: []string{"Network", "WebBrowser"}}
	if !e.HasCategory("Network") || !e.HasCategory("WebBrowser") {
		t.Error("HasCategory() = false for a listed category")
	}
	if e.HasCategory("network") || e.HasCategory("Office") {
		t.Error("HasCategory() = true for an unlisted category")
	}
	if (&Entry{ID: "y.desktop"}).HasCategory("Network") {
		t.Error("HasCategory() = true with no categories")
	}
}

func TestParse_MissingMainSection(t *testing.T) {
	t.Parallel()

	_, err := Parse("x.desktop", "/apps/x.desktop", keyfile.ParseString("[Other]\nName=x\n"))
	if !errors.Is(err, ErrMissingMainSection) {
		t.Errorf("error = %v, want ErrMissingMainSection", err)
	}
}

func TestEntry_ShowIn(t *testing.T) {
	t.Parallel()

	only := mustParse(t, "a.desktop", "[Desktop Entry]\nOnlyShowIn=KDE;\n")
	not := mustParse(t, "b.desktop", "[Desktop Entry]\nNotShowIn=GNOME;\n")
	plain := mustParse(t, "c.desktop", "[Desktop Entry]\n")

	tests := []struct {
		name     string
		entry    *Entry
		desktops []string
		want     bool
	}{
		{"only shown in listed desktop", only, []string{"KDE"}, true},
		{"only hidden elsewhere", only, []string{"GNOME"}, false},
		{"only hidden when desktop unknown", only, nil, false},
		{"not hidden in listed desktop", not, []string{"XFCE", "GNOME"}, false},
		{"not shown elsewhere", not, []string{"KDE"}, true},
		{"plain always shown", plain, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.entry.ShowIn(tt.desktops); got != tt.want {
				t.Errorf("ShowIn(%v) = %v, want %v", tt.desktops, got, tt.want)
			}
		})
	}
}

func TestEntry_Visible(t *testing.T) {
	t.Parallel()

	hidden := mustParse(t, "h.desktop", "[Desktop Entry]\nHidden=true\n")
	nodisplay := mustParse(t, "n.desktop", "[Desktop Entry]\nNoDisplay=true\n")
	if hidden.Visible(nil) || nodisplay.Visible(nil) {
		t.Error("Hidden and NoDisplay records should not be visible")
	}
}

func TestEntry_DisplayName(t *testing.T) {
	t.Parallel()

	if got := mustParse(t, "atom.desktop", "[Desktop Entry]\n").DisplayName(); got != "atom" {
		t.Errorf("DisplayName() = %q, want atom", got)
	}
}

func TestLoadDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Games.directory")
	if err := os.WriteFile(path, []byte("[Desktop Entry]\nType=Directory\nName=Games\nIcon=applications-games\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if d.Name != "Games" || d.Icon != "applications-games" || d.Path != path {
		t.Errorf("LoadDirectory() = %+v", d)
	}

	if _, err := LoadDirectory(filepath.Join(dir, "missing.directory")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestEntryType_IsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := TypeApplication.IsValid(); !ok {
		t.Error("Application should be valid")
	}
	if ok, errs := EntryType("Service").IsValid(); ok || len(errs) == 0 {
		t.Error("Service should be invalid")
	}
}
