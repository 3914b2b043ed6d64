package server

import (
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"rawabit/internal/notifications"
	"rawabit/internal/testutil"

	"github.com/gofiber/fiber/v2"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) listen(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = e.app.Listener(ln) }()
	t.Cleanup(func() { _ = e.app.Shutdown() })
	return ln.Addr().String()
}

// readEvent returns the first frame of the wanted type, skipping others.
func readEvent(t *testing.T, conn *gorillaws.Conn, want string) notifications.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var ev notifications.Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		if ev.Type == want {
			return ev
		}
	}
}

func TestWebsocketStreamsUserEvents(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")
	addr := env.listen(t)

	header := http.Header{"Authorization": {"Bearer " + env.token(t, b)}}
	conn, resp, err := gorillaws.DefaultDialer.Dial("ws://"+addr+"/api/main/ws", header)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return env.server.hub.IsOnline(b.ID) }, 2*time.Second, 20*time.Millisecond)

	env.do(t, http.MethodPost, "/api/main/messages/direct", env.token(t, a), fiber.Map{"recipientId": b.ID, "body": "هل أنت هنا؟"}, nil)

	ev := readEvent(t, conn, EventMessageReceived)
	payload := ev.Payload.(map[string]any)
	assert.Equal(t, "هل أنت هنا؟", payload["body"])

	ev = readEvent(t, conn, EventNotificationsChanged)
	assert.Equal(t, float64(1), ev.Payload.(map[string]any)["unreadCount"])
}

func TestWebsocketReceivesBroadcasts(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")
	addr := env.listen(t)

	// Browsers cannot set headers on upgrade requests, so the token also
	// travels as a query parameter.
	conn, _, err := gorillaws.DefaultDialer.Dial("ws://"+addr+"/api/main/ws?token="+env.token(t, b), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return env.server.hub.IsOnline(b.ID) }, 2*time.Second, 20*time.Millisecond)

	env.do(t, http.MethodPost, "/api/main/content/posts", env.token(t, a), fiber.Map{"title": "جديد"}, nil)

	ev := readEvent(t, conn, EventContentCreated)
	payload := ev.Payload.(map[string]any)
	assert.Equal(t, "post", payload["kind"])
	assert.Equal(t, float64(a.ID), payload["authorId"])
}

func TestWebsocketRejections(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.CreateUser(t, env.db, "amal")

	resp := env.do(t, http.MethodGet, "/api/main/ws", env.token(t, u), nil, nil)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode, "plain GET is not an upgrade")

	addr := env.listen(t)
	_, resp, err := gorillaws.DefaultDialer.Dial("ws://"+addr+"/api/main/ws", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebsocketDisconnectUnregisters(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.CreateUser(t, env.db, "amal")
	addr := env.listen(t)

	conn, _, err := gorillaws.DefaultDialer.Dial("ws://"+addr+"/api/main/ws?token="+env.token(t, u), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return env.server.hub.IsOnline(u.ID) }, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return !env.server.hub.IsOnline(u.ID) }, 2*time.Second, 20*time.Millisecond)
}
