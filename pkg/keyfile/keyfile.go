// SPDX-License-Identifier: MPL-2.0

package keyfile

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// listDelimiters are the separators accepted by Section.List.
const listDelimiters = ";,|"

type (
	// Field is one key=value assignment.
	Field struct {
		Key   string
		Value string
	}

	// Section is an ordered sequence of fields under one header.
	Section struct {
		Name   string
		Fields []Field
	}

	// File is a parsed document. Sections keep their document order.
	File struct {
		// Path is the file the document was read from (empty for in-memory input).
		Path     string
		Sections []*Section
	}
)

// Parse parses data into a File.
func Parse(data []byte) *File {
	f := &File{}
	var current *Section

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			current = &Section{Name: strings.TrimSpace(line[1 : len(line)-1])}
			f.Sections = append(f.Sections, current)
		default:
			key, value, ok := strings.Cut(line, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" || current == nil {
				continue
			}
			current.Fields = append(current.Fields, Field{Key: key, Value: strings.TrimSpace(value)})
		}
	}
	// A line longer than the scanner buffer ends the document; what was read so far is kept.
	if err := scanner.Err(); err != nil {
		slog.Debug("keyfile scan stopped early", "error", err)
	}

	return f
}

// ParseString parses text into a File.
func ParseString(text string) *File {
	return Parse([]byte(text))
}

// ReadFile reads and parses the file at path. A file that cannot be read
// yields an empty File.
func ReadFile(path string) *File {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("keyfile unreadable, treating as empty", "path", path, "error", err)
		return &File{Path: path}
	}
	f := Parse(data)
	f.Path = path
	return f
}

// Section returns the first section named name, or nil.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// IsEmpty reports whether the file has no sections.
func (f *File) IsEmpty() bool {
	return len(f.Sections) == 0
}

// Get returns the raw value for key. When a key is assigned more than once the
// last assignment wins.
func (s *Section) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	for i := len(s.Fields) - 1; i >= 0; i-- {
		if s.Fields[i].Key == key {
			return s.Fields[i].Value, true
		}
	}
	return "", false
}

// Has reports whether key is assigned in the section.
func (s *Section) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Keys returns the distinct keys in first-assignment order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Fields))
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !seen[f.Key] {
			seen[f.Key] = true
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// String returns the value for key, or "".
func (s *Section) String(key string) string {
	v, _ := s.Get(key)
	return v
}

// Int returns the value for key as an integer, or 0.
func (s *Section) Int(key string) int {
	v, ok := s.Get(key)
	if !ok {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Float returns the value for key as a float, or 0.0.
func (s *Section) Float(key string) float64 {
	v, ok := s.Get(key)
	if !ok {
		return 0
	}
	n, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return n
}

// Bool returns the value for key as a boolean. Besides the forms strconv accepts,
// "yes", "y" and "on" are true (case-insensitive). Anything else is false.
func (s *Section) Bool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "yes", "y", "on":
		return true
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// List returns the value for key split on ';', ',' or '|'. Empty items are dropped.
func (s *Section) List(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	parts := strings.FieldsFunc(v, func(r rune) bool {
		return strings.ContainsRune(listDelimiters, r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
