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

type reactionReply struct {
	Summary    models.ReactionSummary `json:"summary"`
	MyReaction string                 `json:"myReaction"`
}

func TestReactReplaceAndRemove(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "amal")
	fan := testutil.CreateUser(t, env.db, "bilal")
	post := testutil.CreateContent(t, env.db, models.KindPost, owner.ID, "مرحبا")
	path := fmt.Sprintf("/api/main/reactions/post/%d", post.ID)
	tok := env.token(t, fan)

	var out reactionReply
	resp := env.do(t, http.MethodPost, path, tok, fiber.Map{"emoji": "❤️"}, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, out.Summary.Total)
	assert.Equal(t, "❤️", out.MyReaction)

	resp = env.do(t, http.MethodPost, path, tok, fiber.Map{"emoji": "😂"}, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, out.Summary.Total, "one reaction per user")
	require.Len(t, out.Summary.Summary, 1)
	assert.Equal(t, "😂", out.Summary.Summary[0].Emoji)

	env.do(t, http.MethodGet, path, tok, nil, &out)
	assert.Equal(t, "😂", out.MyReaction)

	resp = env.do(t, http.MethodDelete, path, tok, nil, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, out.Summary.Total)
	assert.Empty(t, out.MyReaction)

	var notes struct {
		Items []map[string]any `json:"items"`
	}
	env.do(t, http.MethodGet, "/api/main/notifications", env.token(t, owner), nil, &notes)
	assert.Len(t, notes.Items, 1, "only the first reaction notifies")
}

func TestReactValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "amal")
	post := testutil.CreateContent(t, env.db, models.KindPost, owner.ID, "مرحبا")
	tok := env.token(t, owner)

	resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/main/reactions/post/%d", post.ID), tok, fiber.Map{"emoji": " "}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/main/reactions/post/999", tok, fiber.Map{"emoji": "👍"}, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/main/reactions/planet/%d", post.ID), tok, fiber.Map{"emoji": "👍"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSummarizeReactions(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")
	first := testutil.CreateContent(t, env.db, models.KindBook, a.ID, "أ")
	second := testutil.CreateContent(t, env.db, models.KindBook, a.ID, "ب")

	for _, u := range []*models.User{a, b} {
		env.do(t, http.MethodPost, fmt.Sprintf("/api/main/reactions/book/%d", first.ID), env.token(t, u), fiber.Map{"emoji": "👍"}, nil)
	}

	var out map[string]models.ReactionSummary
	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/main/reactions/book?ids=%d,%d", first.ID, second.ID), env.token(t, a), nil, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, out[fmt.Sprint(first.ID)].Total)
	assert.Equal(t, 0, out[fmt.Sprint(second.ID)].Total)
	assert.Len(t, out[fmt.Sprint(first.ID)].ByEmoji["👍"], 2)
}

func TestLexiconReactions(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "amal")
	tok := env.token(t, me)

	var entry map[string]any
	resp := env.do(t, http.MethodPost, "/api/main/lexicon/words", tok, fiber.Map{"text": "سلام", "translation": "peace"}, &entry)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := uint(entry["id"].(float64))

	var out reactionReply
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/main/reactions/word/%d", id), tok, fiber.Map{"emoji": "🌟"}, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, out.Summary.Total)
}
