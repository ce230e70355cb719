// SPDX-License-Identifier: MPL-2.0

// Package keyfile parses line-oriented "[Section]" / "key=value" documents such as
// desktop entries, directory metadata and trash-info records.
//
// Parsing never fails: unreadable or empty input yields a File with zero sections,
// and typed accessors fall back to deterministic defaults (0, 0.0, false, nil) when
// a key is absent or its value cannot be coerced.
package keyfile
