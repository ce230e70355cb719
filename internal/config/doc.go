// SPDX-License-Identifier: MPL-2.0

// Package config handles xdgmenu configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/xdgmenu/config.cue (defaulting to
// ~/.config/xdgmenu/config.cue). Files are validated against an embedded CUE schema
// (config_schema.cue) before being merged over the defaults, so type and range errors
// are reported with the path of the offending field.
package config
