package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/seo-pirate/backend/internal/common/constants"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// NormalizeEmail applies the stored form of an email address: trimmed
// and lowercased, so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// validatePassword enforces the password policy: minimum length plus at
// least one digit, one lowercase and one uppercase letter.
func validatePassword(password string) error {
	if len(password) < constants.PasswordMinLength || len(password) > constants.PasswordMaxLength {
		return ErrWeakPassword
	}

	hasDigit := false
	hasLower := false
	hasUpper := false

	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit || !hasLower || !hasUpper {
		return ErrWeakPassword
	}

	return nil
}
