// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for xdgmenu.
//
// This package implements the Cobra command hierarchy for the xdgmenu CLI:
// menu resolution, application record inspection, XDG search path reporting
// and configuration management.
package cmd
