package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Import.RebuildNormals || cfg.Import.ForceTangents || cfg.Import.IgnoreMissingMaterials {
		t.Error("expected import options to be off by default")
	}
	if cfg.Normalize.Enabled {
		t.Error("expected normalize to be disabled by default")
	}
	if cfg.Normalize.Radius != 1 {
		t.Errorf("expected radius 1, got %f", cfg.Normalize.Radius)
	}
	if !cfg.Normalize.Center {
		t.Error("expected center to be true by default")
	}
	if !cfg.Export.Binary {
		t.Error("expected binary export by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
import:
  rebuild_normals: true
  ignore_missing_materials: true

normalize:
  enabled: true
  radius: 2.5

transform:
  reverse_winding: true
  rotate_x: -90

export:
  binary: false

logging:
  level: "debug"
  log_file: "objmesh.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.Import.RebuildNormals || !cfg.Import.IgnoreMissingMaterials {
		t.Error("expected import options from file")
	}
	if cfg.Import.ForceTangents {
		t.Error("expected force_tangents to stay false")
	}
	if !cfg.Normalize.Enabled || cfg.Normalize.Radius != 2.5 {
		t.Errorf("expected normalize enabled with radius 2.5, got %+v", cfg.Normalize)
	}
	// Keys missing from the file keep their defaults.
	if !cfg.Normalize.Center {
		t.Error("expected center default to survive")
	}
	if !cfg.Transform.ReverseWinding || cfg.Transform.RotateX != -90 {
		t.Errorf("unexpected transform %+v", cfg.Transform)
	}
	if cfg.Export.Binary {
		t.Error("expected binary to be false")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "objmesh.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
normalize:
  radius: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
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
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("normalize:\n  radius: 4\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Normalize.Radius != 4 {
		t.Errorf("expected radius 4 from ./%s, got %f", FileName, cfg.Normalize.Radius)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Transform.RotateY = 180
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Transform.RotateY != 180 || !loaded.Export.Binary {
		t.Errorf("saved config did not round-trip: %+v", loaded)
	}
}

func TestSaveToUserDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("APPDATA", tmpDir)

	cfg := Default()
	cfg.Logging.Level = "debug"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("expected level debug from %s, got %q", DefaultPath(), loaded.Logging.Level)
	}
}
