package server

import (
	"context"
	"log/slog"

	"rawabit/internal/featureflags"
	"rawabit/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler upgrades GET /api/main/ws and streams the session user's
// events until the client goes away. Inbound frames are ignored.
// @Summary Realtime event stream
// @Tags realtime
// @Success 101
// @Failure 426 {object} models.ErrorResponse
// @Router /main/ws [get]
func (s *Server) WebsocketHandler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(uint)
		if userID == 0 || s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","payload":{"reason":"unauthorized"}}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			middleware.Logger.WarnContext(context.Background(), "websocket rejected",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","payload":{"reason":"`+err.Error()+`"}}`))
			_ = conn.Close()
			return
		}

		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		go client.WritePump()
		client.ReadPump()
	})

	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !s.featureFlags.Enabled(featureflags.Realtime, currentUserID(c)) {
			return fiber.ErrServiceUnavailable
		}
		return upgrade(c)
	}
}
