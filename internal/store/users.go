// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

const userColumns = `id, email, password_hash, name, is_active, last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUserByEmail looks up a user by exact email. Callers must normalize
// the email to lower case first.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByID looks up a user by id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// CountUsers returns the number of admin accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
}

// CreateUser inserts a new active admin account.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, 1, ?, ?)`,
		arg.Email, arg.PasswordHash, arg.Name, now, now)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, id)
}

// UpdateUserLastLogin records a successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	return err
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now(), id)
	return err
}

// SetUserActive toggles the account activity flag.
func (q *Queries) SetUserActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now(), id)
	return err
}
