// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sitekit-cms/sitekit-go/internal/auth"
)

// Default admin credentials used when seeding is enabled and no explicit
// bootstrap credentials are configured.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "Changeme1"
	DefaultAdminName     = "Administrator"
)

// Seed creates the initial admin account. It is idempotent: when the
// account already exists nothing happens. Seeding only runs when doSeed
// is set, so production deployments opt in explicitly.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
	)

	return nil
}
