// SPDX-License-Identifier: MPL-2.0

// Package xdgpath resolves the XDG Base Directory locations used for menu
// resolution: application, directory-metadata and merge search directories,
// and the root menu document.
package xdgpath

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// MenusDir is the config-relative directory holding menu documents.
	MenusDir = "menus"
	// MergedDir is the menus-relative directory of drop-in merge documents.
	MergedDir = "applications-merged"
	// ApplicationsDir is the data-relative directory of application records.
	ApplicationsDir = "applications"
	// DirectoriesDir is the data-relative directory of directory metadata.
	DirectoriesDir = "desktop-directories"
	// DefaultMenuName is the root menu document name without prefix.
	DefaultMenuName = "applications.menu"
)

type (
	// LookupFunc reads an environment variable.
	LookupFunc func(key string) (string, bool)

	// Environment is a resolved set of XDG base directories.
	Environment struct {
		Home       string
		DataHome   string
		ConfigHome string
		CacheHome  string
		DataDirs   []string
		ConfigDirs []string
		// MenuPrefix is $XDG_MENU_PREFIX (e.g. "gnome-").
		MenuPrefix string
		// CurrentDesktop is $XDG_CURRENT_DESKTOP split on ':'.
		CurrentDesktop []string
	}
)

// Current resolves the environment of the running process.
func Current() Environment {
	return FromEnv(os.LookupEnv)
}

// FromEnv resolves an Environment using lookup, applying the XDG defaults for
// unset or empty variables.
func FromEnv(lookup LookupFunc) Environment {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	home := get("HOME")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}

	env := Environment{
		Home:           home,
		DataHome:       orDefault(get("XDG_DATA_HOME"), filepath.Join(home, ".local", "share")),
		ConfigHome:     orDefault(get("XDG_CONFIG_HOME"), filepath.Join(home, ".config")),
		CacheHome:      orDefault(get("XDG_CACHE_HOME"), filepath.Join(home, ".cache")),
		DataDirs:       splitList(get("XDG_DATA_DIRS"), []string{"/usr/local/share", "/usr/share"}),
		ConfigDirs:     splitList(get("XDG_CONFIG_DIRS"), []string{"/etc/xdg"}),
		MenuPrefix:     get("XDG_MENU_PREFIX"),
		CurrentDesktop: splitList(get("XDG_CURRENT_DESKTOP"), nil),
	}
	return env
}

// DataSearchDirs returns DataHome followed by DataDirs.
func (e Environment) DataSearchDirs() []string {
	return append([]string{e.DataHome}, e.DataDirs...)
}

// ConfigSearchDirs returns ConfigHome followed by ConfigDirs.
func (e Environment) ConfigSearchDirs() []string {
	return append([]string{e.ConfigHome}, e.ConfigDirs...)
}

// AppDirs returns the standard application record directories in priority order.
func (e Environment) AppDirs() []string {
	return joinAll(e.DataSearchDirs(), ApplicationsDir)
}

// DirectoryDirs returns the standard directory-metadata directories in priority order.
func (e Environment) DirectoryDirs() []string {
	return joinAll(e.DataSearchDirs(), DirectoriesDir)
}

// MergeDirs returns the standard merge search directories in priority order.
func (e Environment) MergeDirs() []string {
	return joinAll(e.ConfigSearchDirs(), filepath.Join(MenusDir, MergedDir))
}

// MenuDirs returns the directories searched for the root menu document.
func (e Environment) MenuDirs() []string {
	return joinAll(e.ConfigSearchDirs(), MenusDir)
}

// MenuFileName returns the prefixed root menu document name.
func (e Environment) MenuFileName() string {
	return e.MenuPrefix + DefaultMenuName
}

// FindMenuFile returns the first existing root menu document. When the
// prefixed name is not found the unprefixed name is tried.
func (e Environment) FindMenuFile() (string, bool) {
	names := []string{e.MenuFileName()}
	if e.MenuPrefix != "" {
		names = append(names, DefaultMenuName)
	}
	for _, name := range names {
		for _, dir := range e.MenuDirs() {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(v string, def []string) []string {
	var out []string
	for _, p := range strings.Split(v, ":") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func joinAll(dirs []string, elem string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, filepath.Join(d, elem))
	}
	return out
}
