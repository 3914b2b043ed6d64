package validation

import (
	"strings"

	"rawabit/internal/i18n"
	"rawabit/internal/models"
)

// reservedUsernames collide with route segments or read as official accounts.
var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"auth":          {},
	"main":          {},
	"me":            {},
	"users":         {},
	"content":       {},
	"comments":      {},
	"lexicon":       {},
	"reactions":     {},
	"friends":       {},
	"messages":      {},
	"conversations": {},
	"notifications": {},
	"ws":            {},
	"swagger":       {},
	"metrics":       {},
	"health":        {},
	"login":         {},
	"signup":        {},
	"logout":        {},
	"rawabit":       {},
	"support":       {},
	"system":        {},
}

// IsReservedUsername reports whether name is unavailable regardless of case.
func IsReservedUsername(name string) bool {
	_, ok := reservedUsernames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func checkReserved(username string) error {
	if IsReservedUsername(username) {
		return models.NewValidationError(i18n.UsernameReserved)
	}
	return nil
}
