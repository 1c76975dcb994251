// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SITEKIT_JWT_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/sitekit.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/sitekit.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 168*time.Hour)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SITEKIT_JWT_SECRET", "custom-secret-key-32-bytes-long!")
	setEnv(t, "SITEKIT_DB_PATH", "/custom/path.db")
	setEnv(t, "SITEKIT_SERVER_PORT", "9090")
	setEnv(t, "SITEKIT_TOKEN_TTL", "24h")
	setEnv(t, "SITEKIT_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 9090)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 24*time.Hour)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestLoad_MissingSecretProduction(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SITEKIT_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing secret in production, got nil")
	}
}

func TestLoad_MissingSecretDevelopment(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected development fallback secret, got empty string")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SITEKIT_JWT_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for short secret, got nil")
	}
	if !strings.Contains(err.Error(), "at least") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoad_KnownWeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SITEKIT_JWT_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for known weak secret, got nil")
	}
}

func TestConfig_MailEnabled(t *testing.T) {
	cfg := Config{}
	if cfg.MailEnabled() {
		t.Error("MailEnabled() = true for empty config")
	}

	cfg.SMTPHost = "smtp.example.com"
	cfg.MailFrom = "noreply@example.com"
	cfg.ContactToEmail = "hello@example.com"
	if !cfg.MailEnabled() {
		t.Error("MailEnabled() = false for configured mail")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcABC123def456ghi789jkl012mno34", true},
		{"abc-ABC-with-specials-but-no-digits!", true},
		{"1234567890123456789012345678901234", false},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
