package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilebleed/internal/terrain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Bleed.Field != DefaultField {
		t.Errorf("expected bleed field %q, got %q", DefaultField, cfg.Bleed.Field)
	}
	if cfg.Bleed.Order != "input" {
		t.Errorf("expected order 'input', got %s", cfg.Bleed.Order)
	}
	if cfg.Bleed.Decay != 0.015 {
		t.Errorf("expected decay 0.015, got %v", cfg.Bleed.Decay)
	}
	if cfg.Bleed.TrailTarget != 0.5 || cfg.Bleed.TrailBlend != 0.8 {
		t.Errorf("expected trail 0.5/0.8, got %v/%v", cfg.Bleed.TrailTarget, cfg.Bleed.TrailBlend)
	}

	if cfg.Splat.Count != 100 || cfg.Splat.Radius != 25 || cfg.Splat.Falloff != 10 {
		t.Errorf("unexpected splat defaults: %+v", cfg.Splat)
	}
	if cfg.Grade.Step != 0.009 || cfg.Grade.MaxSteps != 100 {
		t.Errorf("unexpected grade defaults: %+v", cfg.Grade)
	}
	if cfg.Strip.Field != "center" {
		t.Errorf("expected strip field 'center', got %s", cfg.Strip.Field)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
bleed:
  field: moisture
  seed: 99
  order: left-to-right
  restrict_to_border: true
  decay: 0.02

splat:
  count: 12
  radius: 4.5

grade:
  step: 0.05
  max_steps: 10

logging:
  level: debug
  log_file: tiletool.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bleed.Field != "moisture" {
		t.Errorf("expected field moisture, got %s", cfg.Bleed.Field)
	}
	if cfg.Bleed.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Bleed.Seed)
	}
	if !cfg.Bleed.RestrictToBorder {
		t.Error("expected restrict_to_border to be true")
	}
	if cfg.Bleed.Decay != 0.02 {
		t.Errorf("expected decay 0.02, got %v", cfg.Bleed.Decay)
	}
	// untouched keys keep their defaults
	if cfg.Bleed.TrailTarget != 0.5 {
		t.Errorf("expected trail_target 0.5, got %v", cfg.Bleed.TrailTarget)
	}
	if cfg.Splat.Count != 12 || cfg.Splat.Radius != 4.5 || cfg.Splat.Falloff != 10 {
		t.Errorf("unexpected splat section: %+v", cfg.Splat)
	}
	if cfg.Grade.Step != 0.05 || cfg.Grade.MaxSteps != 10 {
		t.Errorf("unexpected grade section: %+v", cfg.Grade)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "tiletool.log" {
		t.Errorf("unexpected logging section: %+v", cfg.Logging)
	}

	opts := cfg.Bleed.BleedOptions()
	if opts.Order != terrain.OrderLeftToRight || !opts.RestrictToBorder || opts.Decay != 0.02 {
		t.Errorf("BleedOptions = %+v", opts)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "bleed:\n  decay: not a number\n  invalid syntax here\n"},
		{"unknown key", "bleed:\n  decya: 0.1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file should load: %v", err)
	}
	if cfg.Bleed.Field != DefaultField {
		t.Errorf("empty file changed defaults: %+v", cfg.Bleed)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"order", func(c *Config) { c.Bleed.Order = "random" }},
		{"negative decay", func(c *Config) { c.Bleed.Decay = -1 }},
		{"zero radius", func(c *Config) { c.Splat.Radius = 0 }},
		{"negative count", func(c *Config) { c.Splat.Count = -3 }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"empty field", func(c *Config) { c.Strip.Field = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "tiletool.yaml"), []byte("grade:\n  step: 0.1\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find tiletool.yaml in current directory")
	}
}

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	f := &Flags{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return f
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "field",
			args: []string{"-field", "snow"},
			verify: func(t *testing.T, cfg *Config) {
				for _, f := range []string{cfg.Bleed.Field, cfg.Splat.Field, cfg.Grade.Field, cfg.Strip.Field} {
					if f != "snow" {
						t.Errorf("expected field snow, got %s", f)
					}
				}
			},
		},
		{
			name: "seed zero is explicit",
			args: []string{"-seed", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bleed.Seed != 0 || cfg.Splat.Seed != 0 {
					t.Errorf("expected seed 0, got %d/%d", cfg.Bleed.Seed, cfg.Splat.Seed)
				}
			},
		},
		{
			name: "order",
			args: []string{"-order", "left-to-right"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bleed.Order != "left-to-right" {
					t.Errorf("expected order left-to-right, got %s", cfg.Bleed.Order)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Bleed.Seed, cfg.Splat.Seed = 5, 5
			applyFlags(cfg, parseFlags(t, tt.args...))
			tt.verify(t, cfg)
		})
	}
}

func TestSeedFlagRejectsGarbage(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	(&Flags{}).Register(fs)
	if err := fs.Parse([]string{"-seed", "abc"}); err == nil {
		t.Error("expected parse error for non-numeric seed")
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
bleed:
  field: sand
  seed: 7
  order: left-to-right
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(parseFlags(t, "-config", configPath, "-seed", "42"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bleed.Seed != 42 {
		t.Errorf("expected seed 42 from flag, got %d", cfg.Bleed.Seed)
	}
	if cfg.Bleed.Field != "sand" {
		t.Errorf("expected field sand from file, got %s", cfg.Bleed.Field)
	}
	if cfg.Bleed.Order != "left-to-right" {
		t.Errorf("expected order from file, got %s", cfg.Bleed.Order)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("bleed:\n  order: sideways\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(parseFlags(t, "-config", configPath)); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Bleed.Seed = 1234
	cfg.Grade.Field = "ramp"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Bleed.Seed != 1234 || loaded.Grade.Field != "ramp" {
		t.Errorf("reloaded config lost values: %+v / %+v", loaded.Bleed, loaded.Grade)
	}
}
