// SPDX-License-Identifier: MPL-2.0

// Package registry indexes the application records found under an ordered list
// of search directories.
//
// Records are keyed by desktop-file identifier. The first directory that provides
// an identifier wins; later copies are shadowed. A Registry is populated once by
// Load and is read-only afterwards, so it can be shared by concurrent readers.
//
// File organization:
//   - registry.go: Registry type, lookup and enumeration
//   - scan.go: directory walking and parallel record loading
package registry
