package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.DBName != "clearflow" {
		t.Errorf("default dbname = %q, want clearflow", cfg.Database.DBName)
	}
	if cfg.JWT.Issuer != "clearflow.app" {
		t.Errorf("default issuer = %q, want clearflow.app", cfg.JWT.Issuer)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: \"9000\"\njwt:\n  secret: file-secret\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("port = %q, want env override 9999", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %q, want env override", cfg.JWT.Secret)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error when JWT secret is unset")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRATION", "not-a-duration")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "clearance"
	cfg.Database.SSLMode = ""

	got := cfg.GetPostgresConnectionString()
	want := "postgres://u:p@db:5433/clearance?sslmode=disable"
	if got != want {
		t.Errorf("conn string = %q, want %q", got, want)
	}
}
