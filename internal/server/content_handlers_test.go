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

func TestCreateAndListContent(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "amal")
	tok := env.token(t, me)

	for i := 1; i <= 3; i++ {
		var item map[string]any
		resp := env.do(t, http.MethodPost, "/api/main/content/posts", tok,
			fiber.Map{"title": fmt.Sprintf("منشور %d", i), "body": "نص"}, &item)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "post", item["kind"])
		assert.NotEmpty(t, item["imageUrl"], "placeholder image")
	}
	testutil.CreateContent(t, env.db, models.KindBook, me.ID, "كتاب")

	var page struct {
		Items      []map[string]any `json:"items"`
		Pagination map[string]any   `json:"pagination"`
	}
	resp := env.do(t, http.MethodGet, "/api/main/content/posts?page=1&limit=2", tok, nil, &page)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, float64(3), page.Pagination["totalPosts"])
	assert.Equal(t, float64(2), page.Pagination["totalPages"])
	assert.Equal(t, true, page.Pagination["hasNextPage"])
	assert.Equal(t, false, page.Pagination["hasPreviousPage"])
	assert.Equal(t, "منشور 3", page.Items[0]["title"], "newest first")
	assert.NotNil(t, page.Items[0]["reactions"])
}

func TestCreateContentValidation(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, testutil.CreateUser(t, env.db, "amal"))

	resp := env.do(t, http.MethodPost, "/api/main/content/posts", tok, fiber.Map{"title": "   "}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/main/content/poems", tok, fiber.Map{"title": "x"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetContentCountsViews(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "amal")
	tok := env.token(t, me)
	post := testutil.CreateContent(t, env.db, models.KindPost, me.ID, "مرحبا")
	path := fmt.Sprintf("/api/main/content/posts/%d", post.ID)

	var body struct {
		Item       map[string]any `json:"item"`
		MyReaction string         `json:"myReaction"`
	}
	env.do(t, http.MethodGet, path, tok, nil, &body)
	env.do(t, http.MethodGet, path, tok, nil, &body)
	assert.Equal(t, float64(2), body.Item["views"])
	assert.Equal(t, "", body.MyReaction)

	resp := env.do(t, http.MethodGet, "/api/main/content/books/"+fmt.Sprint(post.ID), tok, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "id of another kind")
}

func TestContentMutationIsAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	author := testutil.CreateUser(t, env.db, "amal")
	stranger := testutil.CreateUser(t, env.db, "bilal")
	post := testutil.CreateContent(t, env.db, models.KindPost, author.ID, "الأصل")
	path := fmt.Sprintf("/api/main/content/posts/%d", post.ID)

	var errBody models.ErrorResponse
	resp := env.do(t, http.MethodPatch, path, env.token(t, stranger), fiber.Map{"title": "مخترق"}, &errBody)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeForbidden, errBody.Code)

	resp = env.do(t, http.MethodDelete, path, env.token(t, stranger), nil, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var stored models.Content
	require.NoError(t, env.db.First(&stored, post.ID).Error)
	assert.Equal(t, "الأصل", stored.Title)

	var updated map[string]any
	resp = env.do(t, http.MethodPatch, path, env.token(t, author), fiber.Map{"title": "معدل"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "معدل", updated["title"])

	resp = env.do(t, http.MethodDelete, path, env.token(t, author), nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, path, env.token(t, author), nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
