// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// XDGTree is an isolated XDG directory layout rooted in a temporary directory.
type XDGTree struct {
	Root       string
	Home       string
	DataHome   string
	ConfigHome string
	DataDir    string
	ConfigDir  string
}

// NewXDGTree creates an empty XDG layout under t.TempDir().
func NewXDGTree(t testing.TB) *XDGTree {
	t.Helper()
	root := t.TempDir()
	tree := &XDGTree{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		DataHome:   filepath.Join(root, "home", ".local", "share"),
		ConfigHome: filepath.Join(root, "home", ".config"),
		DataDir:    filepath.Join(root, "usr", "share"),
		ConfigDir:  filepath.Join(root, "etc", "xdg"),
	}
	for _, dir := range []string{tree.DataHome, tree.ConfigHome, tree.DataDir, tree.ConfigDir} {
		MustMkdirAll(t, dir)
	}
	return tree
}

// Env returns the environment variables describing the tree.
func (x *XDGTree) Env() map[string]string {
	return map[string]string{
		"HOME":            x.Home,
		"XDG_DATA_HOME":   x.DataHome,
		"XDG_CONFIG_HOME": x.ConfigHome,
		"XDG_DATA_DIRS":   x.DataDir,
		"XDG_CONFIG_DIRS": x.ConfigDir,
	}
}

// Lookup reads a variable from Env, suitable for xdgpath.FromEnv.
func (x *XDGTree) Lookup(key string) (string, bool) {
	v, ok := x.Env()[key]
	return v, ok
}

// AppDir returns the system application record directory.
func (x *XDGTree) AppDir() string {
	return filepath.Join(x.DataDir, "applications")
}

// UserAppDir returns the user application record directory.
func (x *XDGTree) UserAppDir() string {
	return filepath.Join(x.DataHome, "applications")
}

// DirectoryDir returns the system directory-metadata directory.
func (x *XDGTree) DirectoryDir() string {
	return filepath.Join(x.DataDir, "desktop-directories")
}

// MenuDir returns the system menus directory.
func (x *XDGTree) MenuDir() string {
	return filepath.Join(x.ConfigDir, "menus")
}
