// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"fmt"
	"os"

	"github.com/xdgmenu/xdgmenu/pkg/keyfile"
)

// Directory is a directory metadata record used to caption a menu.
type Directory struct {
	// Path is the file the record was loaded from.
	Path      string
	Name      string
	Icon      string
	Comment   string
	NoDisplay bool
}

// LoadDirectory reads the directory metadata record at path.
func LoadDirectory(path string) (*Directory, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return ParseDirectory(path, keyfile.ReadFile(path))
}

// ParseDirectory decodes a directory metadata record from f.
func ParseDirectory(path string, f *keyfile.File) (*Directory, error) {
	s := f.Section(MainSection)
	if s == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingMainSection)
	}
	return &Directory{
		Path:      path,
		Name:      s.String("Name"),
		Icon:      s.String("Icon"),
		Comment:   s.String("Comment"),
		NoDisplay: s.Bool("NoDisplay"),
	}, nil
}
