// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xdgmenu/xdgmenu/internal/issue"
	"github.com/xdgmenu/xdgmenu/internal/xdgpath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "xdgmenu"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. XDGMENU_OUTPUT_FORMAT.
	EnvPrefix = "XDGMENU"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns $XDG_CONFIG_HOME/xdgmenu.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	env := xdgpath.Current()
	if env.ConfigHome == "" {
		return "", fmt.Errorf("failed to resolve config directory: neither XDG_CONFIG_HOME nor HOME is set")
	}
	return filepath.Join(env.ConfigHome, AppName), nil
}

// FilePath returns the path of the config file inside dir, or inside
// ConfigDir when dir is empty.
func FilePath(dir string) (string, error) {
	dir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions loads defaults, merges the config file when one exists and
// applies XDGMENU_* environment overrides. It returns the config and the
// path of the file that was read, empty when none was.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'xdgmenu config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cuePath, err := FilePath(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}
		if fileExists(cuePath) {
			resolvedPath = cuePath
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if ok, errs := cfg.IsValid(); !ok {
		ctxErr := issue.NewErrorContext().
			WithOperation("validate configuration").
			WithIssue(issue.ConfigLoadFailedId)
		var invalid *InvalidConfigError
		if errors.As(errs[0], &invalid) {
			for _, fe := range invalid.FieldErrors {
				ctxErr.WithSuggestion(fe.Error())
			}
		}
		return nil, "", ctxErr.Wrap(errs[0]).BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("menu_file", d.MenuFile)
	v.SetDefault("desktop_environment", d.DesktopEnvironment)
	v.SetDefault("app_dirs", d.AppDirs)
	v.SetDefault("max_merge_depth", d.MaxMergeDepth)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("show_hidden", d.ShowHidden)
	v.SetDefault("output_format", string(d.OutputFormat))
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before the XDG default.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file into dir (ConfigDir when
// empty). An existing file is kept unless force is set. It returns the path
// and whether a file was written.
func CreateDefaultConfig(dir string, force bool) (string, bool, error) {
	path, err := FilePath(dir)
	if err != nil {
		return "", false, err
	}
	if fileExists(path) && !force {
		return path, false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a config.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// xdgmenu configuration file\n\n")
	if cfg.MenuFile != "" {
		fmt.Fprintf(&sb, "menu_file: %q\n", cfg.MenuFile)
	} else {
		sb.WriteString("// menu_file: \"/etc/xdg/menus/applications.menu\"\n")
	}
	fmt.Fprintf(&sb, "desktop_environment: %s\n", cueList(cfg.DesktopEnvironment))
	fmt.Fprintf(&sb, "app_dirs: %s\n", cueList(cfg.AppDirs))
	fmt.Fprintf(&sb, "max_merge_depth: %d\n", cfg.MaxMergeDepth)
	fmt.Fprintf(&sb, "workers: %d\n", cfg.Workers)
	fmt.Fprintf(&sb, "show_hidden: %v\n", cfg.ShowHidden)
	fmt.Fprintf(&sb, "output_format: %q\n", cfg.OutputFormat)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}

func cueList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = fmt.Sprintf("%q", it)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
