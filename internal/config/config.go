// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads and validates application configuration
// from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string        `env:"SITEKIT_DB_PATH" envDefault:"./data/sitekit.db"`
	JWTSecret  string        `env:"SITEKIT_JWT_SECRET"`
	TokenTTL   time.Duration `env:"SITEKIT_TOKEN_TTL" envDefault:"168h"` // 7 days
	ServerHost string        `env:"SITEKIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int           `env:"SITEKIT_SERVER_PORT" envDefault:"8080"`
	Env        string        `env:"SITEKIT_ENV" envDefault:"development"`
	LogLevel   string        `env:"SITEKIT_LOG_LEVEL" envDefault:"info"`

	// Bootstrap admin credentials. Only honored while the users table is
	// empty, so a fresh deployment is usable before any account is seeded.
	BootstrapAdminEmail    string `env:"SITEKIT_ADMIN_EMAIL" envDefault:"admin@example.com"`
	BootstrapAdminPassword string `env:"SITEKIT_ADMIN_PASSWORD"`

	// Cache configuration
	RedisURL     string `env:"SITEKIT_REDIS_URL"` // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SITEKIT_CACHE_PREFIX" envDefault:"sitekit:"`
	CacheTTL     int    `env:"SITEKIT_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SITEKIT_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Outbound notification mail (fire-and-forget; delivery failures never
	// surface to API clients)
	SMTPHost       string `env:"SITEKIT_SMTP_HOST"`
	SMTPPort       int    `env:"SITEKIT_SMTP_PORT" envDefault:"587"`
	SMTPUser       string `env:"SITEKIT_SMTP_USER"`
	SMTPPass       string `env:"SITEKIT_SMTP_PASS"`
	MailFrom       string `env:"SITEKIT_MAIL_FROM"`
	ContactToEmail string `env:"SITEKIT_CONTACT_TO"` // Where contact notifications go

	// Retention for inbox-style data, in days. 0 disables the cleanup job.
	SubmissionRetentionDays int `env:"SITEKIT_SUBMISSION_RETENTION_DAYS" envDefault:"365"`

	// Seeding configuration
	DoSeed bool `env:"SITEKIT_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MailEnabled returns true if outbound mail is configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != "" && c.ContactToEmail != ""
}

// MinJWTSecretLength is the minimum required length for the token signing key.
const MinJWTSecretLength = 32

// devJWTSecret is used when no secret is configured in development mode.
// Tokens signed with it are worthless outside a local environment.
const devJWTSecret = "sitekit-development-signing-key!"

// Load parses environment variables and returns a Config struct.
// The JWT signing secret is fail-closed: production refuses to start
// without a strong secret, development falls back to a fixed key with
// a loud warning.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("SITEKIT_JWT_SECRET is required outside development; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
		slog.Warn("SITEKIT_JWT_SECRET not set, using insecure development key")
		cfg.JWTSecret = devJWTSecret
		return cfg, nil
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("SITEKIT_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("SITEKIT_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("SITEKIT_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
