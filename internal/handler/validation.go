// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Password and name constraints for admin accounts.
const (
	MinPasswordLength = 6
	MinNameLength     = 2
	MaxNameLength     = 100
)

// ValidateEmail checks email format.
// Returns an error message, or empty string if valid.
func ValidateEmail(email string) string {
	if email == "" {
		return "Email is required"
	}
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return "Invalid email address"
	}
	return ""
}

// ValidatePasswordLength checks only the minimum length. Used for
// password changes, where the full signup policy does not apply.
func ValidatePasswordLength(password string) string {
	if password == "" {
		return "Password is required"
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}

// ValidatePassword enforces the admin password policy: at least
// MinPasswordLength characters with an uppercase letter and a digit.
func ValidatePassword(password string) string {
	if msg := ValidatePasswordLength(password); msg != "" {
		return msg
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return "Password must contain an uppercase letter"
	}
	if !hasDigit {
		return "Password must contain a digit"
	}
	return ""
}

// ValidateName checks the display name length bounds.
func ValidateName(name string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLength {
		return "Name must be at least 2 characters"
	}
	if n > MaxNameLength {
		return "Name must be at most 100 characters"
	}
	return ""
}

// NormalizeEmail lower-cases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
