package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Language != "en" || cfg.Defaults.Country != "US" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.Defaults.PAADepth != 1 || cfg.Defaults.MaxQuestions != 20 || cfg.Defaults.MaxRequests != 15 {
		t.Errorf("budget defaults = %+v", cfg.Defaults)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestLoadHydratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "credentials:\n  api_login: file-login\n  api_password: file-pass\ndefaults:\n  country: GB\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Country != "GB" {
		t.Errorf("Country = %q, want GB", cfg.Defaults.Country)
	}
	if cfg.Defaults.Language != "en" {
		t.Errorf("Language = %q, want hydrated default en", cfg.Defaults.Language)
	}
	if cfg.Credentials.APILogin != "file-login" {
		t.Errorf("APILogin = %q", cfg.Credentials.APILogin)
	}
}

func TestLoadEnvironmentOverridesCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "credentials:\n  api_login: file-login\n  api_password: file-pass\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERPKIT_API_LOGIN", "env-login")
	t.Setenv("SERPKIT_API_PASSWORD", "env-pass")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Credentials.APILogin != "env-login" || cfg.Credentials.APIPassword != "env-pass" {
		t.Errorf("credentials = %+v, want env overrides", cfg.Credentials)
	}
}
