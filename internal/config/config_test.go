// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/xdgmenu/xdgmenu/internal/issue"
	"github.com/xdgmenu/xdgmenu/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), content)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.MaxMergeDepth != 32 || cfg.Workers != 4 {
		t.Errorf("MaxMergeDepth, Workers = %d, %d, want 32, 4", cfg.MaxMergeDepth, cfg.Workers)
	}
	if cfg.OutputFormat != OutputText || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("OutputFormat, ColorScheme = %s, %s", cfg.OutputFormat, cfg.UI.ColorScheme)
	}
	if cfg.MenuFile != "" || cfg.ShowHidden || cfg.UI.Verbose {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
	if ok, errs := cfg.IsValid(); !ok {
		t.Errorf("DefaultConfig().IsValid() = %v", errs)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if cfg.MaxMergeDepth != DefaultConfig().MaxMergeDepth {
		t.Errorf("MaxMergeDepth = %d", cfg.MaxMergeDepth)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
menu_file: "/etc/xdg/menus/kde-applications.menu"
desktop_environment: ["KDE", "Plasma"]
max_merge_depth: 8
output_format: "json"
ui: color_scheme: "dark"
`)
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}
	if cfg.MenuFile != "/etc/xdg/menus/kde-applications.menu" || cfg.MaxMergeDepth != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.DesktopEnvironment, []string{"KDE", "Plasma"}) {
		t.Errorf("DesktopEnvironment = %v", cfg.DesktopEnvironment)
	}
	if cfg.OutputFormat != OutputJSON || cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("OutputFormat, ColorScheme = %s, %s", cfg.OutputFormat, cfg.UI.ColorScheme)
	}
	if cfg.Workers != DefaultConfig().Workers {
		t.Errorf("Workers = %d, want the default", cfg.Workers)
	}
}

func TestLoad_SchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"depth below range", "max_merge_depth: 0\n", "max_merge_depth"},
		{"workers above range", "workers: 65\n", "workers"},
		{"unknown format", "output_format: \"yaml\"\n", "output_format"},
		{"wrong type", "show_hidden: \"yes\"\n", "show_hidden"},
		{"unknown field", "colour: true\n", "colour"},
		{"syntax", "max_merge_depth: {\n", "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := writeConfig(t, tt.content)
			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.Issue != issue.ConfigLoadFailedId {
				t.Fatalf("error = %v, want an ActionableError for the config issue", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %q", err, tt.field)
			}
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, "workers: 2\n")
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(dir, "config.cue")})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}

	_, err = NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(dir, "absent.cue")})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !strings.Contains(ae.Error(), "config file not found") {
		t.Errorf("missing explicit file error = %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDGMENU_WORKERS", "9")
	t.Setenv("XDGMENU_UI_VERBOSE", "true")

	dir := writeConfig(t, "workers: 2\n")
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Workers != 9 || !cfg.UI.Verbose {
		t.Errorf("Workers, Verbose = %d, %v, want 9, true", cfg.Workers, cfg.UI.Verbose)
	}
}

func TestLoad_EnvOutOfRange(t *testing.T) {
	t.Setenv("XDGMENU_MAX_MERGE_DEPTH", "0")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || len(ae.Suggestions) != 1 || !strings.Contains(ae.Suggestions[0], "max_merge_depth") {
		t.Errorf("suggestions = %v", ae)
	}
}

func TestGenerateCUE_LoadsBack(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.MenuFile = "/tmp/custom.menu"
	want.AppDirs = []string{"/opt/apps"}
	want.ShowHidden = true
	want.OutputFormat = OutputTOML

	dir := writeConfig(t, GenerateCUE(want))
	got, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got.MenuFile != want.MenuFile || !got.ShowHidden || got.OutputFormat != OutputTOML ||
		!slices.Equal(got.AppDirs, want.AppDirs) || len(got.DesktopEnvironment) != 0 {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, created, err := CreateDefaultConfig(dir, false)
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %q, %v, %v", path, created, err)
	}
	testutil.MustWriteFile(t, path, "workers: 3\n")

	if _, created, err := CreateDefaultConfig(dir, false); err != nil || created {
		t.Errorf("second CreateDefaultConfig() created=%v err=%v, want kept file", created, err)
	}
	if _, created, err := CreateDefaultConfig(dir, true); err != nil || !created {
		t.Errorf("forced CreateDefaultConfig() created=%v err=%v", created, err)
	}
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil || cfg.Workers != DefaultConfig().Workers {
		t.Errorf("forced file not rewritten: %+v, %v", cfg, err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	dir, err := ConfigDir()
	if err != nil || dir != "/tmp/xdg-config/xdgmenu" {
		t.Errorf("ConfigDir() = %q, %v", dir, err)
	}

	SetConfigDirOverride("/tmp/override")
	t.Cleanup(Reset)
	if dir, _ := ConfigDir(); dir != "/tmp/override" {
		t.Errorf("ConfigDir() with override = %q", dir)
	}
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	cfg, err := StaticProvider{}.Load(context.Background(), LoadOptions{})
	if err != nil || cfg.Workers != DefaultConfig().Workers {
		t.Errorf("empty StaticProvider = %+v, %v", cfg, err)
	}

	fixed := &Config{Workers: 7}
	cfg, _ = StaticProvider{Config: fixed}.Load(context.Background(), LoadOptions{})
	cfg.Workers = 1
	if fixed.Workers != 7 {
		t.Error("StaticProvider returned its own pointer")
	}
}
