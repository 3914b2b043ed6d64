package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"rawabit/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerUser = 8
	maxTotalConns   = 10000
)

var (
	ErrHubFull   = errors.New("server connection limit reached")
	ErrUserFull  = errors.New("user connection limit reached")
	ErrHubClosed = errors.New("hub is shut down")
)

// Event is the envelope of every frame sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub maps user IDs to their open connections.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
	closed     bool
	log        *observability.WSLogger
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[uint]map[*Client]struct{}),
		log:   observability.NewWSLogger("events"),
	}
}

// Register adds conn for userID. conn may be nil in tests.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if h.totalConns >= maxTotalConns {
		return nil, ErrHubFull
	}
	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, ErrUserFull
	}

	client := newClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	h.log.LogConnect(context.Background(), userID)
	return client, nil
}

// UnregisterClient removes client; calling it twice is harmless.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.UserID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	h.totalConns--
	close(client.Send)
	if len(m) == 0 {
		delete(h.conns, client.UserID)
	}
	h.log.LogDisconnect(context.Background(), client.UserID, "closed")
}

// Broadcast sends message to all connections of userID.
func (h *Hub) Broadcast(userID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.conns[userID] {
		c.TrySend(data)
	}
}

// BroadcastAll sends message to every connection.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for _, clients := range h.conns {
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// IsOnline reports whether userID has at least one open connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}

// Connections returns the number of open connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalConns
}

// StartWiring forwards messages published through n to local connections.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == broadcastChannel {
			h.BroadcastAll(payload)
			return
		}
		userID, ok := parseUserChannel(channel)
		if !ok {
			observability.GlobalLogger.Warn("invalid realtime channel", slog.String("channel", channel))
			return
		}
		h.Broadcast(userID, payload)
	})
}

// Shutdown closes every connection with a going-away frame.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	for userID, clients := range h.conns {
		for client := range clients {
			close(client.Send)
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")); err != nil {
				h.log.LogError(context.Background(), userID, err, "close")
			}
			_ = client.Conn.Close()
		}
	}
	h.conns = make(map[uint]map[*Client]struct{})
	h.totalConns = 0
	return nil
}

// Publisher delivers events to users, through Redis when configured and
// directly to the local hub otherwise.
type Publisher struct {
	hub      *Hub
	notifier *Notifier
}

func NewPublisher(hub *Hub, notifier *Notifier) *Publisher {
	return &Publisher{hub: hub, notifier: notifier}
}

// ToUser publishes an event to one user. Failures are logged.
func (p *Publisher) ToUser(ctx context.Context, userID uint, eventType string, payload interface{}) {
	if p == nil || userID == 0 {
		return
	}
	msg, ok := encode(eventType, payload)
	if !ok {
		return
	}
	if p.notifier.Enabled() {
		if err := p.notifier.PublishUser(ctx, userID, msg); err != nil {
			observability.GlobalLogger.ErrorContext(ctx, "failed to publish realtime event",
				slog.String("event", eventType),
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	if p.hub != nil {
		p.hub.Broadcast(userID, msg)
	}
}

// ToAll publishes an event to every connected user.
func (p *Publisher) ToAll(ctx context.Context, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	msg, ok := encode(eventType, payload)
	if !ok {
		return
	}
	if p.notifier.Enabled() {
		if err := p.notifier.PublishBroadcast(ctx, msg); err != nil {
			observability.GlobalLogger.ErrorContext(ctx, "failed to broadcast realtime event",
				slog.String("event", eventType),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	if p.hub != nil {
		p.hub.BroadcastAll(msg)
	}
}

func encode(eventType string, payload interface{}) (string, bool) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		observability.GlobalLogger.Error("failed to marshal realtime event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return string(data), true
}
