// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sitekit-cms/sitekit-go/internal/auth"
	"github.com/sitekit-cms/sitekit-go/internal/middleware"
	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
)

// SignupRequest is the request body for POST /admin/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the request body for POST /admin/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AuthResponse carries a fresh token and the account it belongs to.
type AuthResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// Signup handles POST /api/v1/admin/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = NormalizeEmail(req.Email)

	fieldErrors := map[string]string{}
	if msg := ValidateEmail(req.Email); msg != "" {
		fieldErrors["email"] = msg
	}
	if msg := ValidatePassword(req.Password); msg != "" {
		fieldErrors["password"] = msg
	}
	if msg := ValidateName(req.Name); msg != "" {
		fieldErrors["name"] = msg
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetUserByEmail(r.Context(), req.Email); err == nil {
		WriteConflict(w, "An account with this email already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("signup email lookup failed", "error", err)
		WriteInternalError(w, "Failed to create account")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		WriteInternalError(w, "Failed to create account")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	})
	if err != nil {
		// Unique index race between the lookup and the insert
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			WriteConflict(w, "An account with this email already exists")
			return
		}
		slog.Error("user creation failed", "error", err)
		WriteInternalError(w, "Failed to create account")
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		slog.Error("token issue failed after signup", "error", err, "user_id", user.ID)
		WriteInternalError(w, "Failed to create account")
		return
	}

	slog.Info("admin account created", "user_id", user.ID, "email", user.Email)
	WriteCreated(w, AuthResponse{Token: token, User: user.Public()})
}

// Login handles POST /api/v1/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	if h.prot != nil {
		if locked, remaining := h.prot.IsAccountLocked(req.Email); locked {
			slog.Warn("login attempt on locked account", "email", req.Email, "remaining", remaining)
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				"Account temporarily locked. Try again later.", nil)
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if h.tryBootstrapLogin(w, r, req) {
				return
			}
			h.failLogin(w, req.Email)
			return
		}
		slog.Error("login user lookup failed", "error", err)
		WriteInternalError(w, "Login failed")
		return
	}

	if !user.IsActive {
		slog.Warn("login attempt on deactivated account", "user_id", user.ID)
		WriteForbidden(w, "Account is deactivated")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.failLogin(w, req.Email)
		return
	}

	// Transparent hash upgrade when parameters change
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if updErr := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); updErr != nil {
				slog.Warn("password rehash update failed", "error", updErr, "user_id", user.ID)
			}
		}
	}

	if h.prot != nil {
		h.prot.RecordSuccessfulLogin(req.Email)
	}
	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("last login update failed", "error", err, "user_id", user.ID)
	}

	token, err := h.issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		slog.Error("token issue failed", "error", err, "user_id", user.ID)
		WriteInternalError(w, "Login failed")
		return
	}

	WriteSuccess(w, AuthResponse{Token: token, User: user.Public()}, nil)
}

// tryBootstrapLogin honors the configured bootstrap credential, but only
// while the credential store is completely empty. The matching account is
// created on the spot so the issued token maps to a real user row.
func (h *Handler) tryBootstrapLogin(w http.ResponseWriter, r *http.Request, req LoginRequest) bool {
	if h.bootstrapEmail == "" || h.bootstrapPassword == "" {
		return false
	}
	if req.Email != NormalizeEmail(h.bootstrapEmail) || req.Password != h.bootstrapPassword {
		return false
	}

	count, err := h.queries.CountUsers(r.Context())
	if err != nil || count > 0 {
		return false
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return false
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         "Administrator",
	})
	if err != nil {
		return false
	}

	token, err := h.issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return false
	}

	slog.Warn("bootstrap credential used, admin account created", "user_id", user.ID, "email", user.Email)
	WriteSuccess(w, AuthResponse{Token: token, User: user.Public()}, nil)
	return true
}

// failLogin records the failure for lockout tracking and writes a
// uniform 401 so attackers cannot tell which emails exist.
func (h *Handler) failLogin(w http.ResponseWriter, email string) {
	if h.prot != nil {
		if locked, duration := h.prot.RecordFailedAttempt(email); locked {
			slog.Warn("account locked after failed logins", "email", email, "duration", duration)
		}
	}
	slog.Warn("login failed", "email", email)
	WriteUnauthorized(w, "Invalid email or password")
}

// ChangePassword handles POST /api/v1/admin/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if msg := ValidatePasswordLength(req.NewPassword); msg != "" {
		WriteValidationError(w, map[string]string{"new_password": msg})
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Account not found")
			return
		}
		slog.Error("change-password user lookup failed", "error", err)
		WriteInternalError(w, "Failed to change password")
		return
	}

	ok, err := auth.CheckPassword(req.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		slog.Warn("change-password old password mismatch", "user_id", user.ID)
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		WriteInternalError(w, "Failed to change password")
		return
	}

	if err := h.queries.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
		slog.Error("password update failed", "error", err, "user_id", user.ID)
		WriteInternalError(w, "Failed to change password")
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	WriteSuccess(w, map[string]string{"status": "ok"}, nil)
}

// Me handles GET /api/v1/admin/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, user.Public(), nil)
}
