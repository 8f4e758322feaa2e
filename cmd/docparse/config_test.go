package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvVarPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("tab_width: 4\nid_prefix: x-\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envVarConfigPath, path)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.TabWidth)
	}
	if cfg.IDPrefix != "x-" {
		t.Errorf("IDPrefix = %q, want \"x-\"", cfg.IDPrefix)
	}
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	t.Setenv(envVarConfigPath, filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TabWidth != 0 {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadConfigMalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("not: [valid: yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envVarConfigPath, path)

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected malformed config file to error")
	}
}
