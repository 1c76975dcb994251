// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models shared across the application:
// admin users, page sections, site content collections and inbox records.
package model

import (
	"database/sql"
	"time"
)

// RoleAdmin is the admin user role.
const RoleAdmin = "admin"

// User represents an admin panel account.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Name         string       `json:"name"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"-"`
}

// PublicUser is the JSON shape of a user in API responses.
type PublicUser struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Public converts a User to its API representation.
func (u *User) Public() PublicUser {
	pu := PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  RoleAdmin,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		pu.LastLoginAt = &t
	}
	return pu
}
