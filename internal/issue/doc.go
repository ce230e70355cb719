// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and the Markdown issue catalog the
// CLI renders when menu resolution cannot proceed.
package issue
