package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// GetDefault Tests
// =============================================================================

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()

	if cfg == nil {
		t.Fatal("GetDefault returned nil")
	}

	for _, name := range []string{"temp", "browser", "prefetch", "thumbnails"} {
		if !cfg.Categories.Enabled(name) {
			t.Errorf("expected %s to be enabled by default", name)
		}
	}
	if cfg.PrefetchMaxAgeDays != 30 {
		t.Errorf("expected prefetch age 30, got %d", cfg.PrefetchMaxAgeDays)
	}
	if cfg.DryRun {
		t.Error("expected DryRun to be off by default")
	}
	if cfg.AssumeYes {
		t.Error("expected the confirmation prompt by default")
	}
	if !cfg.PauseOnExit {
		t.Error("expected PauseOnExit by default")
	}
	if cfg.Output != "summary" {
		t.Errorf("expected summary output, got %q", cfg.Output)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestCategoriesEnabledUnknown(t *testing.T) {
	if GetDefault().Categories.Enabled("registry") {
		t.Error("unknown category reported as enabled")
	}
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if *cfg != *GetDefault() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *GetDefault())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
categories:
  browser: false
prefetch_max_age_days: 7
dry_run: true
output: json
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Categories.Browser {
		t.Error("browser should be disabled")
	}
	if !cfg.Categories.Temp {
		t.Error("keys absent from the file should keep their defaults")
	}
	if cfg.PrefetchMaxAgeDays != 7 {
		t.Errorf("PrefetchMaxAgeDays = %d, want 7", cfg.PrefetchMaxAgeDays)
	}
	if !cfg.DryRun {
		t.Error("DryRun should be set")
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WINCLEAN_DRY_RUN", "true")
	t.Setenv("WINCLEAN_PREFETCH_MAX_AGE_DAYS", "14")
	t.Setenv("WINCLEAN_CATEGORIES_THUMBNAILS", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.DryRun {
		t.Error("WINCLEAN_DRY_RUN not applied")
	}
	if cfg.PrefetchMaxAgeDays != 14 {
		t.Errorf("PrefetchMaxAgeDays = %d, want 14", cfg.PrefetchMaxAgeDays)
	}
	if cfg.Categories.Thumbnails {
		t.Error("WINCLEAN_CATEGORIES_THUMBNAILS not applied")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero age", "prefetch_max_age_days: 0\n"},
		{"bad output", "output: xml\n"},
		{"malformed yaml", "categories: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() expected an error")
			}
		})
	}
}

// =============================================================================
// Save / Validate Tests
// =============================================================================

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := GetDefault()
	cfg.PrefetchMaxAgeDays = 45
	cfg.Categories.Prefetch = false

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", *loaded, *cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero age", func(c *Config) { c.PrefetchMaxAgeDays = 0 }, "at least 1 day"},
		{"unknown output", func(c *Config) { c.Output = "html" }, "unknown output format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"relative log file", func(c *Config) { c.Logging.File = "winclean.log" }, "must be absolute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
