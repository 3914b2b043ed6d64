package server

import (
	"fmt"
	"net/http"
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconCRUD(t *testing.T) {
	env := newTestEnv(t)
	author := testutil.CreateUser(t, env.db, "amal")
	other := testutil.CreateUser(t, env.db, "bilal")
	tok := env.token(t, author)

	for _, text := range []string{"شمس", "قمر"} {
		resp := env.do(t, http.MethodPost, "/api/main/lexicon/word", tok, fiber.Map{"text": text}, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	var sentence map[string]any
	resp := env.do(t, http.MethodPost, "/api/main/lexicon/sentences", tok,
		fiber.Map{"text": "صباح الخير", "translation": "Good morning", "language": "ar"}, &sentence)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "sentence", sentence["kind"])

	var page struct {
		Items      []map[string]any `json:"items"`
		Pagination map[string]any   `json:"pagination"`
	}
	env.do(t, http.MethodGet, "/api/main/lexicon/words", env.token(t, other), nil, &page)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, float64(2), page.Pagination["totalWords"])

	id := uint(sentence["id"].(float64))
	path := fmt.Sprintf("/api/main/lexicon/sentences/%d", id)

	resp = env.do(t, http.MethodPatch, path, env.token(t, other), fiber.Map{"text": "تخريب"}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	var stored models.LexiconEntry
	require.NoError(t, env.db.First(&stored, id).Error)
	assert.Equal(t, "صباح الخير", stored.Text)

	var updated map[string]any
	resp = env.do(t, http.MethodPatch, path, tok, fiber.Map{"translation": "Morning of goodness"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Morning of goodness", updated["translation"])
	assert.Equal(t, "صباح الخير", updated["text"])

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/main/lexicon/words/%d", id), tok, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "a sentence is not a word")

	resp = env.do(t, http.MethodDelete, path, env.token(t, other), nil, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, path, tok, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLexiconRejectsUnknownLanguage(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, testutil.CreateUser(t, env.db, "amal"))

	resp := env.do(t, http.MethodPost, "/api/main/lexicon/word", tok, fiber.Map{"text": "Hallo", "language": "de"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
