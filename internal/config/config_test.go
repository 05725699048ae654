package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var luxeVars = []string{
	"LUXE_API_URL", "LUXE_HTTP_TIMEOUT", "LUXE_CONFIG_DIR", "LUXE_CALLBACK_DELAY_MS",
	"LUXE_CALLBACK_LISTEN", "LUXE_SERIALIZE_CART", "LUXE_PAYPAL_CHECKOUT_URL",
}

// withCleanEnv blanks every LUXE_ variable for the test and pins the config dir
func withCleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range luxeVars {
		t.Setenv(k, "")
	}
	t.Setenv("LUXE_CONFIG_DIR", t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	withCleanEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %s", cfg.HTTPTimeout)
	}
	if cfg.CallbackDelay != 100*time.Millisecond {
		t.Errorf("Expected default callback delay 100ms, got %s", cfg.CallbackDelay)
	}
	if cfg.CallbackListen != "127.0.0.1:8765" {
		t.Errorf("Expected default listen address, got %s", cfg.CallbackListen)
	}
	if cfg.SerializeCart {
		t.Error("Expected cart serialization off by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	withCleanEnv(t)
	t.Setenv("LUXE_API_URL", "http://localhost:5000/api/")
	t.Setenv("LUXE_HTTP_TIMEOUT", "0")
	t.Setenv("LUXE_CALLBACK_DELAY_MS", "250")
	t.Setenv("LUXE_SERIALIZE_CART", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("Expected timeout disabled, got %s", cfg.HTTPTimeout)
	}
	if cfg.CallbackDelay != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %s", cfg.CallbackDelay)
	}
	if !cfg.SerializeCart {
		t.Error("Expected cart serialization on")
	}
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	withCleanEnv(t)
	t.Setenv("LUXE_HTTP_TIMEOUT", "soon")
	t.Setenv("LUXE_SERIALIZE_CART", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.HTTPTimeout != 30*time.Second || cfg.SerializeCart {
		t.Errorf("Expected defaults for unparsable values, got %+v", cfg)
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LUXE_API_URL", "ftp://example.com"},
		{"LUXE_API_URL", "not a url"},
		{"LUXE_HTTP_TIMEOUT", "-1"},
		{"LUXE_CALLBACK_DELAY_MS", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			withCleanEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadWithAPIURL_OverrideWins(t *testing.T) {
	withCleanEnv(t)
	t.Setenv("LUXE_API_URL", "not a url")

	cfg, err := LoadWithAPIURL("http://localhost:5000/api/")
	if err != nil {
		t.Fatalf("Expected override to bypass the bad env value, got %v", err)
	}
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("Expected trimmed override URL, got %q", cfg.APIURL)
	}

	if _, err := LoadWithAPIURL("ftp://example.com"); err == nil {
		t.Error("Expected an invalid override to be rejected")
	}
}

func TestLoadDotEnv(t *testing.T) {
	withCleanEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("LUXE_CALLBACK_LISTEN=127.0.0.1:9999\nLUXE_API_URL=http://from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LUXE_API_URL", "http://from-env")
	os.Unsetenv("LUXE_CALLBACK_LISTEN")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := os.Getenv("LUXE_CALLBACK_LISTEN"); got != "127.0.0.1:9999" {
		t.Errorf("Expected value from .env, got %q", got)
	}
	if got := os.Getenv("LUXE_API_URL"); got != "http://from-env" {
		t.Errorf("Expected environment to win, got %q", got)
	}
}
