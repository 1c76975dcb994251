// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role issued by this system.
const RoleAdmin = "admin"

// Token verification failures. ErrTokenExpired is distinct from
// ErrTokenInvalid so clients can prompt a re-login instead of showing a
// generic error.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the JWT payload for an authenticated admin session.
// A verified token's claims are trusted as-is for the lifetime of the
// token; there is no revocation list, invalidation is only by expiry.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies admin session tokens.
// It is stateless: a pure function over the configured key and input.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret and
// token time-to-live.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue creates a signed token for the given identity.
func (ti *TokenIssuer) Issue(userID int64, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   RoleAdmin,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. On success the decoded
// claims are returned. Expired tokens fail with ErrTokenExpired, every
// other failure (bad signature, malformed, wrong algorithm) with
// ErrTokenInvalid.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid || claims.Role != RoleAdmin {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
