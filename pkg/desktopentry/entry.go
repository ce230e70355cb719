// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/keyfile"
)

const (
	// MainSection is the header of the primary record section.
	MainSection = "Desktop Entry"

	// ApplicationExt is the file extension of application records.
	ApplicationExt = ".desktop"
	// DirectoryExt is the file extension of directory metadata records.
	DirectoryExt = ".directory"

	// TypeApplication is the Type value of launchable applications.
	TypeApplication EntryType = "Application"
	// TypeLink is the Type value of URL shortcuts.
	TypeLink EntryType = "Link"
	// TypeDirectory is the Type value of directory metadata.
	TypeDirectory EntryType = "Directory"
)

// ErrMissingMainSection is returned when a record has no [Desktop Entry] section.
var ErrMissingMainSection = errors.New("missing [" + MainSection + "] section")

type (
	// EntryType is the value of the Type key.
	EntryType string

	// Entry is one application launcher record.
	Entry struct {
		// ID is the desktop-file identifier (e.g. "org.gnome.gedit.desktop").
		ID string
		// Path is the file the record was loaded from.
		Path string

		Name           string
		GenericName    string
		Type           EntryType
		Icon           string
		Comment        string
		MimeTypes      []string
		Categories     []string
		Exec           string
		TryExec        string
		WorkDir        string
		URL            string
		Terminal       bool
		NoDisplay      bool
		Hidden         bool
		OnlyShowIn     []string
		NotShowIn      []string
		StartupNotify  bool
		StartupWMClass string
	}
)

// Parse decodes an application record from f. The id is the registry
// identifier, path the record's location.
func Parse(id, path string, f *keyfile.File) (*Entry, error) {
	s := f.Section(MainSection)
	if s == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingMainSection)
	}

	e := &Entry{
		ID:          id,
		Path:        path,
		Name:        s.String("Name"),
		GenericName: s.String("GenericName"),
		Type:        EntryType(s.String("Type")),
		Icon:        s.String("Icon"),
		Comment:     s.String("Comment"),
		MimeTypes:   s.List("MimeType"),
		Categories:  s.List("Categories"),
		Exec:        s.String("Exec"),
		TryExec:     s.String("TryExec"),
		WorkDir:     s.String("Path"),
		URL:         s.String("URL"),
		Terminal:    s.Bool("Terminal"),
		NoDisplay:   s.Bool("NoDisplay"),
		Hidden:      s.Bool("Hidden"),
		OnlyShowIn:  s.List("OnlyShowIn"),
		NotShowIn:   s.List("NotShowIn"),

		StartupNotify:  s.Bool("StartupNotify"),
		StartupWMClass: s.String("StartupWMClass"),
	}
	// Older records spell it with a space.
	if e.GenericName == "" {
		e.GenericName = s.String("Generic Name")
	}

	return e, nil
}

// HasCategory reports whether category is listed in Categories.
func (e *Entry) HasCategory(category string) bool {
	return slices.Contains(e.Categories, category)
}

// DisplayName returns Name, falling back to the identifier without extension.
func (e *Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return strings.TrimSuffix(e.ID, ApplicationExt)
}

// ShowIn reports whether the record should be shown in any of desktops
// according to OnlyShowIn and NotShowIn. An empty desktops list means the
// current desktop is unknown, in which case OnlyShowIn records are hidden.
func (e *Entry) ShowIn(desktops []string) bool {
	for _, d := range desktops {
		if slices.Contains(e.NotShowIn, d) {
			return false
		}
	}
	if len(e.OnlyShowIn) == 0 {
		return true
	}
	for _, d := range desktops {
		if slices.Contains(e.OnlyShowIn, d) {
			return true
		}
	}
	return false
}

// Visible reports whether the record should be presented in a menu on desktops.
func (e *Entry) Visible(desktops []string) bool {
	return !e.Hidden && !e.NoDisplay && e.ShowIn(desktops)
}

// IsApplication reports whether the record launches a program.
func (e *Entry) IsApplication() bool {
	return e.Type == TypeApplication
}

// String returns the identifier.
func (e *Entry) String() string { return e.ID }

// IsValid returns whether the EntryType is one defined by the desktop entry format.
func (t EntryType) IsValid() (bool, []error) {
	switch t {
	case TypeApplication, TypeLink, TypeDirectory:
		return true, nil
	default:
		return false, []error{fmt.Errorf("unknown desktop entry type %q", t)}
	}
}
