package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := Load(missingPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 8317 {
		t.Fatalf("expected default port 8317, got %d", cfg.Port)
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Store.Backend)
	}
	if cfg.OTP.Digits != 4 || cfg.OTP.TTL != 0 || cfg.OTP.SingleUse || !cfg.OTP.EchoCode {
		t.Fatalf("unexpected default otp policy: %+v", cfg.OTP)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: 9000\nstore:\n  backend: sqlite\n  dsn: auth.db\notp:\n  digits: 6\n  ttl: 5m\n  single-use: true\n  echo-code: false\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Store.Backend != StoreBackendSQLite || cfg.Store.DSN != "auth.db" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.OTP.Digits != 6 {
		t.Fatalf("expected 6 digits, got %d", cfg.OTP.Digits)
	}
	if cfg.OTP.TTL != 5*time.Minute {
		t.Fatalf("expected ttl 5m, got %s", cfg.OTP.TTL)
	}
	if !cfg.OTP.SingleUse || cfg.OTP.EchoCode {
		t.Fatalf("unexpected otp flags: %+v", cfg.OTP)
	}
}

func TestLoad_EnvDSNForcesSQLite(t *testing.T) {
	t.Setenv(EnvDBConnection, "file:env.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Store.Backend != StoreBackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.DSN != "file:env.db" {
		t.Fatalf("expected env dsn, got %q", cfg.Store.DSN)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("store:\n  backend: redis\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
