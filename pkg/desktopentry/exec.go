// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ErrEmptyExec is returned by Argv when the record has no Exec command.
var ErrEmptyExec = errors.New("empty Exec command")

// Argv splits Exec into an argument vector, honoring shell quoting, and expands
// the field codes %f %F %u %U %i %c %k and %%. Deprecated codes are dropped.
// Variable references are kept verbatim.
func (e *Entry) Argv(files ...string) ([]string, error) {
	if strings.TrimSpace(e.Exec) == "" {
		return nil, fmt.Errorf("%s: %w", e.ID, ErrEmptyExec)
	}

	fields, err := shell.Fields(e.Exec, keepVariable)
	if err != nil {
		return nil, fmt.Errorf("%s: parse Exec: %w", e.ID, err)
	}

	argv := make([]string, 0, len(fields)+len(files))
	for _, field := range fields {
		switch field {
		case "%f", "%u":
			if len(files) > 0 {
				argv = append(argv, files[0])
			}
		case "%F", "%U":
			argv = append(argv, files...)
		case "%i":
			if e.Icon != "" {
				argv = append(argv, "--icon", e.Icon)
			}
		default:
			if arg := expandInline(field, e); arg != "" {
				argv = append(argv, arg)
			}
		}
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s: %w", e.ID, ErrEmptyExec)
	}

	return argv, nil
}

// expandInline expands the field codes that may appear inside a larger argument.
func expandInline(field string, e *Entry) string {
	if !strings.Contains(field, "%") {
		return field
	}

	var sb strings.Builder
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c != '%' || i+1 == len(field) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch field[i] {
		case '%':
			sb.WriteByte('%')
		case 'c':
			sb.WriteString(e.Name)
		case 'k':
			sb.WriteString(e.Path)
		}
		// Remaining codes (%f/%u inside a word, %d, %D, %n, %N, %v, %m) expand to nothing.
	}
	return sb.String()
}

// keepVariable expands a variable reference back to its own text. IFS stays
// unset so field splitting uses the default separators.
func keepVariable(name string) string {
	if name == "IFS" {
		return ""
	}
	return "$" + name
}
