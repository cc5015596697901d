package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mytasks/internal/config"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	t.Setenv(config.EnvBaseURL, "")
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := &config.Config{Dir: dir}

	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(cfg.SettingsPath())
	if err != nil {
		t.Fatalf("config.toml not written: %v", err)
	}
	if !strings.Contains(string(data), "base_url") || !strings.Contains(string(data), "http://localhost:5000") {
		t.Errorf("unexpected config.toml:\n%s", data)
	}
	if cfg.BaseURL() != config.DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL())
	}
	if cfg.PageSize() != 6 {
		t.Errorf("expected page size 6, got %d", cfg.PageSize())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Timeout())
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	t.Setenv(config.EnvBaseURL, "")
	dir := t.TempDir()
	content := "base_url = \"https://tasks.example.com/\"\npage_size = 10\ntimeout = \"2s\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Dir: dir}
	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL() != "https://tasks.example.com" {
		t.Errorf("expected trimmed base URL, got %q", cfg.BaseURL())
	}
	if cfg.PageSize() != 10 {
		t.Errorf("expected page size 10, got %d", cfg.PageSize())
	}
	if cfg.Timeout() != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.Timeout())
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("timeout = \"soon\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Dir: dir}
	err := cfg.Load()
	if err == nil || err.Error() != "invalid timeout: soon" {
		t.Errorf("expected invalid timeout error, got %v", err)
	}
}

func TestBaseURL_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvBaseURL, "http://127.0.0.1:9999/")
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.Settings{BaseURL: "http://ignored"}}
	if cfg.BaseURL() != "http://127.0.0.1:9999" {
		t.Errorf("expected env override, got %q", cfg.BaseURL())
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "mytasks") {
		t.Errorf("unexpected config dir %q", got)
	}
}
