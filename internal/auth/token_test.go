// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-signing-key-32-bytes-long!!"

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.Issue(42, "admin@example.com", "Jane Doe")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "admin@example.com")
	}
	if claims.Role != RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, RoleAdmin)
	}
	if claims.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", claims.Name, "Jane Doe")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue(1, "admin@example.com", "")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify error = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer("another-signing-key-32-bytes!!!!", time.Hour)

	token, err := issuer.Issue(1, "admin@example.com", "")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = other.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestVerify_AlgorithmConfusion(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	// Unsigned token with alg=none must never verify.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJ1aWQiOjEsInJvbGUiOiJhZG1pbiJ9."
	if _, err := issuer.Verify(unsigned); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify(alg=none) error = %v, want ErrTokenInvalid", err)
	}
}
