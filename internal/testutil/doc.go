// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that build menu, record and
// configuration fixtures on disk, failing the test immediately on I/O errors.
//
// Common helpers include fixture writers (MustWriteFile, WriteDesktopEntry,
// WriteMenu), directory operations (MustMkdirAll) and an isolated XDG
// environment (NewXDGTree).
package testutil
