// SPDX-License-Identifier: MPL-2.0

// Package menu resolves freedesktop menu descriptor documents into a
// hierarchical, deduplicated, ordered menu tree.
//
// Resolution happens in two passes. ParseFile reads the root document, follows
// <MergeFile> and <MergeDir> directives (refusing merge cycles) and produces a
// skeleton of Nodes carrying names, rules and layout directives. Build then
// assigns application records to every node, enforces <OnlyUnallocated> and
// <Deleted> across the whole tree, and arranges each node's Entries according
// to its layout.
//
// File organization:
//   - node.go: Node and layout option types
//   - condition.go: Include/Exclude expression trees and their evaluation
//   - layout.go: layout directives and the arrangement of entries
//   - parse.go: descriptor document parsing
//   - merge.go: merge directive resolution and the cycle guard
//   - build.go: application assignment and cross-tree cleanup
//   - dump.go: text dump and serializable snapshots
package menu
