// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/auth"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/signup", "", SignupRequest{
		Email:    "a@b.com",
		Password: "Abcdef1",
		Name:     "Jane Doe",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token in the signup response")
	}
	if resp.User.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", resp.User.Email)
	}
	if resp.User.Name != "Jane Doe" {
		t.Errorf("expected name Jane Doe, got %q", resp.User.Name)
	}

	// The returned token must work against a protected route.
	rec = env.request(t, http.MethodGet, "/api/v1/admin/me", resp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /admin/me with fresh token, got %d", rec.Code)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "taken@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/signup", "", SignupRequest{
		Email:    "Taken@Example.com",
		Password: "Abcdef1",
		Name:     "Second Account",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if detail := decodeError(t, rec); detail.Code != "conflict" {
		t.Errorf("expected code conflict, got %q", detail.Code)
	}
}

func TestSignup_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/signup", "", SignupRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "X",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	detail := decodeError(t, rec)
	if detail.Code != "validation_error" {
		t.Errorf("expected code validation_error, got %q", detail.Code)
	}
	for _, field := range []string{"email", "password", "name"} {
		if detail.Details[field] == "" {
			t.Errorf("expected a field error for %q", field)
		}
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "login@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "Login@Example.com",
		Password: "Abcdef1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token in the login response")
	}
	if resp.User.Email != "login@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "login@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "login@example.com",
		Password: "WrongPass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	wrongPass := decodeError(t, rec).Message

	// Unknown account must produce the identical message.
	rec = env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "ghost@example.com",
		Password: "WrongPass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", rec.Code)
	}
	if msg := decodeError(t, rec).Message; msg != wrongPass {
		t.Errorf("login error messages differ: %q vs %q", wrongPass, msg)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createAdmin(t, "gone@example.com", "Abcdef1")
	if err := env.queries.SetUserActive(t.Context(), user.ID, false); err != nil {
		t.Fatalf("SetUserActive: %v", err)
	}

	rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "gone@example.com",
		Password: "Abcdef1",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_AccountLockout(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "locked@example.com", "Abcdef1")

	for i := 0; i < 5; i++ {
		rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
			Email:    "locked@example.com",
			Password: "WrongPass1",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}

	// Even the right password is refused while the account is locked.
	rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "locked@example.com",
		Password: "Abcdef1",
	})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 while locked, got %d: %s", rec.Code, rec.Body.String())
	}
	if detail := decodeError(t, rec); detail.Code != "account_locked" {
		t.Errorf("expected code account_locked, got %q", detail.Code)
	}
}

func TestLogin_Bootstrap(t *testing.T) {
	env := newTestEnv(t)
	env.handler.bootstrapEmail = "boot@example.com"
	env.handler.bootstrapPassword = "Bootpass1"

	rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "boot@example.com",
		Password: "Bootpass1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for bootstrap login, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token from bootstrap login")
	}

	// Once any account exists, bootstrap credentials stop working for
	// other emails and the created account logs in normally.
	rec = env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "boot@example.com",
		Password: "Bootpass1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat bootstrap login, got %d", rec.Code)
	}
}

func TestLogin_BootstrapIgnoredOnceUsersExist(t *testing.T) {
	env := newTestEnv(t)
	env.handler.bootstrapEmail = "boot@example.com"
	env.handler.bootstrapPassword = "Bootpass1"
	env.createAdmin(t, "real@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email:    "boot@example.com",
		Password: "Bootpass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "pw@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/change-password", token, ChangePasswordRequest{
		OldPassword: "Abcdef1",
		NewPassword: "Newpass2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Old password no longer works, new one does.
	rec = env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email: "pw@example.com", Password: "Abcdef1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with old password, got %d", rec.Code)
	}
	rec = env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email: "pw@example.com", Password: "Newpass2",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with new password, got %d", rec.Code)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "pw@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/change-password", token, ChangePasswordRequest{
		OldPassword: "WrongPass1",
		NewPassword: "Newpass2",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChangePassword_WeakNewPassword(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "pw@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/change-password", token, ChangePasswordRequest{
		OldPassword: "Abcdef1",
		NewPassword: "weak",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChangePassword_SimpleNewPassword(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "pw@example.com", "Abcdef1")

	// Changing a password only requires the minimum length, not the
	// full signup policy.
	rec := env.request(t, http.MethodPost, "/api/v1/admin/change-password", token, ChangePasswordRequest{
		OldPassword: "Abcdef1",
		NewPassword: "abcdef",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{
		Email: "pw@example.com", Password: "abcdef",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with new password, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChangePassword_DeletedAccount(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createAdmin(t, "pw@example.com", "Abcdef1")

	if _, err := env.db.Exec("DELETE FROM users WHERE id = ?", user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// The token is still valid, but the account behind it is gone.
	rec := env.request(t, http.MethodPost, "/api/v1/admin/change-password", token, ChangePasswordRequest{
		OldPassword: "Abcdef1",
		NewPassword: "Newpass2",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if apiErr := decodeError(t, rec); apiErr.Code != "not_found" {
		t.Errorf("expected code not_found, got %q", apiErr.Code)
	}
}

func TestProtectedRoute_TokenErrors(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createAdmin(t, "tok@example.com", "Abcdef1")

	// Missing header
	rec := env.request(t, http.MethodGet, "/api/v1/admin/pages", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", rec.Code)
	}
	missing := decodeError(t, rec).Message

	// Garbage token
	rec = env.request(t, http.MethodGet, "/api/v1/admin/pages", "not.a.jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", rec.Code)
	}
	invalid := decodeError(t, rec).Message

	// Expired token
	expiredIssuer := auth.NewTokenIssuer(testJWTSecret, -time.Hour)
	expired, err := expiredIssuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	rec = env.request(t, http.MethodGet, "/api/v1/admin/pages", expired, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with expired token, got %d", rec.Code)
	}
	expiredMsg := decodeError(t, rec).Message

	// The three failure modes are distinguishable.
	if missing == invalid || missing == expiredMsg || invalid == expiredMsg {
		t.Errorf("expected distinct messages, got %q / %q / %q", missing, invalid, expiredMsg)
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createAdmin(t, "me@example.com", "Abcdef1")

	rec := env.request(t, http.MethodGet, "/api/v1/admin/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	decodeData(t, rec, &resp)
	if resp.ID != user.ID {
		t.Errorf("expected user id %d, got %d", user.ID, resp.ID)
	}
	if resp.Email != "me@example.com" {
		t.Errorf("expected email me@example.com, got %q", resp.Email)
	}
}
