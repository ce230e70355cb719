// SPDX-License-Identifier: MPL-2.0

// Package resolver runs a complete menu resolution: it locates the root menu
// document, parses it with its merges, loads the application registry from the
// directories the document names, and builds the presentable tree.
package resolver
