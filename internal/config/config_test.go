package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("expected 168h TTL, got %s", cfg.SessionTTL)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("expected 10s provider timeout, got %s", cfg.ProviderTimeout)
	}
	if cfg.Port != "5050" {
		t.Errorf("expected default port 5050, got %s", cfg.Port)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	writeConfig(t, `
port: "9000"
session_ttl: 48h
provider_endpoint: https://idp.example.com/session-data
admin_emails:
  - ops@example.com
`)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env should override yaml port, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 48*time.Hour {
		t.Errorf("expected 48h TTL, got %s", cfg.SessionTTL)
	}
	if cfg.ProviderEndpoint != "https://idp.example.com/session-data" {
		t.Errorf("unexpected endpoint %q", cfg.ProviderEndpoint)
	}
	if !cfg.IsAdminEmail("OPS@example.com") {
		t.Error("admin email match should be case-insensitive")
	}
	if cfg.IsAdminEmail("other@example.com") {
		t.Error("unlisted email must not be admin")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	writeConfig(t, "session_ttl: not-a-duration\n")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed session_ttl")
	}
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := defaults()
	cfg.SessionTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero TTL")
	}
}
