package validation

import (
	"testing"

	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReservedUsernames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "ordinary", username: "layla_88", ok: true},
		{name: "contains reserved word", username: "admin_layla", ok: true},
		{name: "route segment", username: "notifications", ok: false},
		{name: "admin", username: "admin", ok: false},
		{name: "mixed case", username: "Admin", ok: false},
		{name: "brand", username: "rawabit", ok: false},
		{name: "self alias", username: "me", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, !tt.ok, IsReservedUsername(tt.username))
		})
	}
}

func TestValidateUsernameRejectsReserved(t *testing.T) {
	t.Parallel()
	err := ValidateUsername("support")
	var appErr *models.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, i18n.UsernameReserved, appErr.Key)
		assert.Equal(t, "username is reserved", appErr.Localize(i18n.English))
	}
	assert.NoError(t, ValidateUsername("supporter"))
}
