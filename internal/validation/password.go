// Package validation holds input validators shared by signup and profile
// updates.
package validation

import (
	"errors"
	"regexp"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128

	minUsernameLength = 3
	maxUsernameLength = 30

	maxEmailLength = 254
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword enforces the password policy: length bounds plus at least
// one uppercase letter, one lowercase letter, one digit and one special
// character. Letters outside ASCII count toward the letter classes.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLength {
		return errors.New("password must be at least 12 characters")
	}
	if length > maxPasswordLength {
		return errors.New("password must be at most 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return errors.New("password must contain uppercase, lowercase, digit and special characters")
	}
	return nil
}

// ValidateUsername allows letters, digits, underscores and dashes. The first
// and last characters must be alphanumeric.
func ValidateUsername(username string) error {
	length := utf8.RuneCountInString(username)
	if length < minUsernameLength {
		return errors.New("username must be at least 3 characters")
	}
	if length > maxUsernameLength {
		return errors.New("username must be at most 30 characters")
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username may only contain letters, digits, underscores and dashes, and must start and end with a letter or digit")
	}
	return nil
}

// ValidateEmail checks the address shape and the RFC 5321 overall length cap.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength {
		return errors.New("email must be at most 254 characters")
	}
	if !emailRe.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}
