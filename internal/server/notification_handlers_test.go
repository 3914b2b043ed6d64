package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationPage struct {
	Items      []map[string]any `json:"items"`
	Pagination map[string]any   `json:"pagination"`
}

func (e *testEnv) unread(t *testing.T, tok string) int64 {
	t.Helper()
	var out map[string]int64
	resp := e.do(t, http.MethodGet, "/api/main/notifications/unread-count", tok, nil, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return out["unreadCount"]
}

func TestNotificationsReadState(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "amal")
	fan := testutil.CreateUser(t, env.db, "bilal")
	post := testutil.CreateContent(t, env.db, models.KindPost, owner.ID, "مرحبا")
	ownerTok, fanTok := env.token(t, owner), env.token(t, fan)

	env.do(t, http.MethodPost, fmt.Sprintf("/api/main/reactions/post/%d", post.ID), fanTok, fiber.Map{"emoji": "👍"}, nil)
	env.do(t, http.MethodPost, fmt.Sprintf("/api/main/content/posts/%d/comments", post.ID), fanTok, fiber.Map{"body": "جميل"}, nil)
	require.Equal(t, int64(2), env.unread(t, ownerTok))
	assert.Zero(t, env.unread(t, fanTok))

	var page notificationPage
	env.do(t, http.MethodGet, "/api/main/notifications?unread=true", ownerTok, nil, &page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, float64(2), page.Pagination["totalNotifications"])
	assert.Equal(t, "comment", page.Items[0]["type"], "newest first")
	noteID := uint(page.Items[0]["id"].(float64))
	path := fmt.Sprintf("/api/main/notifications/%d/read", noteID)

	resp := env.do(t, http.MethodPatch, path, fanTok, fiber.Map{"read": true}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "only the recipient may mark it")
	assert.Equal(t, int64(2), env.unread(t, ownerTok))

	var note map[string]any
	resp = env.do(t, http.MethodPatch, path, ownerTok, fiber.Map{"read": true}, &note)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, note["read"])
	assert.Equal(t, int64(1), env.unread(t, ownerTok))

	resp = env.do(t, http.MethodPatch, path, ownerTok, fiber.Map{"read": false}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), env.unread(t, ownerTok))

	var all map[string]int64
	resp = env.do(t, http.MethodPost, "/api/main/notifications/read-all", ownerTok, nil, &all)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), all["updated"])
	assert.Zero(t, env.unread(t, ownerTok))

	env.do(t, http.MethodGet, "/api/main/notifications?unread=true", ownerTok, nil, &page)
	assert.Empty(t, page.Items)
}

func TestNotificationsRenderInRequestLanguage(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "amal")
	fan := testutil.CreateUser(t, env.db, "bilal")
	post := testutil.CreateContent(t, env.db, models.KindPost, owner.ID, "مرحبا")
	env.do(t, http.MethodPost, fmt.Sprintf("/api/main/content/posts/%d/comments", post.ID), env.token(t, fan), fiber.Map{"body": "جميل"}, nil)

	fetch := func(lang string) string {
		req := httptest.NewRequest(http.MethodGet, "/api/main/notifications", nil)
		req.Header.Set("Authorization", "Bearer "+env.token(t, owner))
		req.Header.Set("Accept-Language", lang)
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		var page notificationPage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		require.Len(t, page.Items, 1)
		return page.Items[0]["message"].(string)
	}

	assert.Contains(t, fetch("en"), "Bilal commented on your")
	assert.Contains(t, fetch("ar"), "علّق Bilal على")
}

func TestFriendRequestNotifies(t *testing.T) {
	env := newTestEnv(t)
	x := testutil.CreateUser(t, env.db, "xavier")
	y := testutil.CreateUser(t, env.db, "yasmin")
	pair := fiber.Map{"senderId": x.ID, "receiverId": y.ID}

	env.do(t, http.MethodPost, "/api/main/friends/request", env.token(t, x), pair, nil)
	assert.Equal(t, int64(1), env.unread(t, env.token(t, y)))

	env.do(t, http.MethodPost, "/api/main/friends/accept", env.token(t, y), pair, nil)
	var page notificationPage
	env.do(t, http.MethodGet, "/api/main/notifications", env.token(t, x), nil, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "friend_accept", page.Items[0]["type"])
}
