// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/xdgmenu/xdgmenu/pkg/menu"
)

const (
	// OutputText renders the menu tree as indented text.
	OutputText OutputFormat = "text"
	// OutputJSON renders the menu snapshot as JSON.
	OutputJSON OutputFormat = "json"
	// OutputTOML renders the menu snapshot as TOML.
	OutputTOML OutputFormat = "toml"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	maxMergeDepthLimit = 256
	maxWorkersLimit    = 64
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrOutOfRange is returned when a numeric setting is outside its bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how `xdgmenu resolve` prints the tree.
	OutputFormat string

	// ColorScheme selects the CLI palette.
	ColorScheme string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutOfRangeError reports a numeric setting outside [Min, Max].
	OutOfRangeError struct {
		Field    string
		Value    int
		Min, Max int
	}

	// InvalidConfigError collects the field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig holds CLI presentation settings.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// Config is the effective xdgmenu configuration.
	Config struct {
		// MenuFile is the root menu document; empty selects the XDG lookup.
		MenuFile string `json:"menu_file" mapstructure:"menu_file"`
		// DesktopEnvironment overrides $XDG_CURRENT_DESKTOP when non-empty.
		DesktopEnvironment []string `json:"desktop_environment" mapstructure:"desktop_environment"`
		// AppDirs are scanned after the directories named by the menu document.
		AppDirs       []string     `json:"app_dirs" mapstructure:"app_dirs"`
		MaxMergeDepth int          `json:"max_merge_depth" mapstructure:"max_merge_depth"`
		Workers       int          `json:"workers" mapstructure:"workers"`
		ShowHidden    bool         `json:"show_hidden" mapstructure:"show_hidden"`
		OutputFormat  OutputFormat `json:"output_format" mapstructure:"output_format"`
		UI            UIConfig     `json:"ui" mapstructure:"ui"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DesktopEnvironment: []string{},
		AppDirs:            []string{},
		MaxMergeDepth:      menu.DefaultMaxMergeDepth,
		Workers:            menu.DefaultWorkers,
		OutputFormat:       OutputText,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether the OutputFormat is one of the defined formats.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputText, OutputJSON, OutputTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// IsValid validates the fields the CUE schema also constrains, for configs
// built in code.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if c.MaxMergeDepth < 1 || c.MaxMergeDepth > maxMergeDepthLimit {
		errs = append(errs, &OutOfRangeError{Field: "max_merge_depth", Value: c.MaxMergeDepth, Min: 1, Max: maxMergeDepthLimit})
	}
	if c.Workers < 1 || c.Workers > maxWorkersLimit {
		errs = append(errs, &OutOfRangeError{Field: "workers", Value: c.Workers, Min: 1, Max: maxWorkersLimit})
	}
	if ok, fieldErrs := c.OutputFormat.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, toml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error {
	return ErrInvalidOutputFormat
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d is outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap returns ErrOutOfRange for errors.Is() compatibility.
func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}
