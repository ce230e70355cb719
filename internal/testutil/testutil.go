// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
// It returns path for convenient chaining.
func MustWriteFile(t testing.TB, path, content string) string {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteDesktopEntry writes a minimal application record named id into dir.
// Extra lines are appended verbatim to the [Desktop Entry] section.
func WriteDesktopEntry(t testing.TB, dir, id, name string, categories []string, extra ...string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("[Desktop Entry]\nType=Application\n")
	fmt.Fprintf(&sb, "Name=%s\n", name)
	fmt.Fprintf(&sb, "Exec=%s\n", strings.TrimSuffix(id, ".desktop"))
	if len(categories) > 0 {
		fmt.Fprintf(&sb, "Categories=%s;\n", strings.Join(categories, ";"))
	}
	for _, line := range extra {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return MustWriteFile(t, filepath.Join(dir, id), sb.String())
}

// WriteMenu writes a menu document whose <Menu> root holds body.
func WriteMenu(t testing.TB, path, body string) string {
	t.Helper()
	doc := `<!DOCTYPE Menu PUBLIC "-//freedesktop//DTD Menu 1.0//EN"
 "http://www.freedesktop.org/standards/menu-spec/1.0/menu.dtd">
<Menu>
` + body + `
</Menu>
`
	return MustWriteFile(t, path, doc)
}

// MustSetenv sets the environment variable key to value for the duration of
// the test.
func MustSetenv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
}
