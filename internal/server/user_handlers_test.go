package server

import (
	"net/http"
	"strconv"
	"testing"

	"rawabit/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "rania")

	var body map[string]any
	resp := env.do(t, http.MethodGet, "/api/main/users/me", env.token(t, me), nil, &body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "rania", body["username"])
	assert.Equal(t, "rania@example.com", body["email"])
	assert.NotEmpty(t, body["avatar"])
}

func TestUpdateMyProfile(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "rania")
	tok := env.token(t, me)

	var body map[string]any
	resp := env.do(t, http.MethodPatch, "/api/main/users/me", tok, fiber.Map{"bio": "  مهندسة  ", "lastName": "Saleh"}, &body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "مهندسة", body["bio"])
	assert.Equal(t, "Saleh", body["lastName"])
	assert.Equal(t, "Rania", body["firstName"], "omitted fields are kept")
}

func TestGetUserProfile(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "rania")
	other := testutil.CreateUser(t, env.db, "karim")
	tok := env.token(t, me)

	tests := []struct {
		name           string
		userIDParam    string
		expectedStatus int
	}{
		{"Success", strconv.FormatUint(uint64(other.ID), 10), fiber.StatusOK},
		{"Not found", "9999", fiber.StatusNotFound},
		{"Invalid ID", "abc", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodGet, "/api/main/users/"+tt.userIDParam, tok, nil, nil)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	t.Run("hides email and reports relationship", func(t *testing.T) {
		var body map[string]any
		env.do(t, http.MethodGet, "/api/main/users/"+strconv.FormatUint(uint64(other.ID), 10), tok, nil, &body)
		assert.NotContains(t, body, "email")
		assert.Equal(t, "none", body["friendshipStatus"])
		assert.Equal(t, false, body["online"])
	})
}
