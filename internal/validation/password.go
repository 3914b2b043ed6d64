package validation

import (
	"regexp"
	"unicode"

	"rawabit/internal/i18n"
	"rawabit/internal/models"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128
)

var (
	digitRegex    = regexp.MustCompile(`[0-9]`)
	specialRegex  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return models.NewValidationError(i18n.PasswordLength, minPasswordLength, maxPasswordLength)
	}

	var hasUpper, hasLower bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasUpper {
		return models.NewValidationError(i18n.PasswordUpper)
	}
	if !hasLower {
		return models.NewValidationError(i18n.PasswordLower)
	}
	if !digitRegex.MatchString(password) {
		return models.NewValidationError(i18n.PasswordDigit)
	}
	if !specialRegex.MatchString(password) {
		return models.NewValidationError(i18n.PasswordSpecial)
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError(i18n.UsernameInvalid)
	}
	// Cannot start or end with underscore/hyphen
	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return models.NewValidationError(i18n.UsernameInvalid)
	}
	return checkReserved(username)
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return models.NewValidationError(i18n.EmailInvalid)
	}
	return nil
}
