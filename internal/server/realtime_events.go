package server

import (
	"context"

	"rawabit/internal/featureflags"

	"github.com/gofiber/fiber/v2"
)

// Event type constants prevent typos in event names.
const (
	EventContentCreated         = "content_created"
	EventReactionUpdated        = "reaction_updated"
	EventCommentCreated         = "comment_created"
	EventContentShared          = "content_shared"
	EventMessageReceived        = "message_received"
	EventGroupMessage           = "group_message"
	EventConversationRead       = "conversation_read"
	EventFriendRequestReceived  = "friend_request_received"
	EventFriendRequestSent      = "friend_request_sent"
	EventFriendRequestAccepted  = "friend_request_accepted"
	EventFriendRequestDeclined  = "friend_request_declined"
	EventFriendRequestCancelled = "friend_request_cancelled"
	EventFriendRemoved          = "friend_removed"
	EventNotificationsChanged   = "notifications_changed"
)

// eventContext detaches the publish from the request deadline while
// keeping its values for logging.
func eventContext(c *fiber.Ctx) context.Context {
	return context.WithoutCancel(c.UserContext())
}

func (s *Server) publishUserEvent(c *fiber.Ctx, userID uint, eventType string, payload interface{}) {
	if !s.featureFlags.Enabled(featureflags.Realtime, userID) {
		return
	}
	s.events.ToUser(eventContext(c), userID, eventType, payload)
}

func (s *Server) publishBroadcastEvent(c *fiber.Ctx, eventType string, payload interface{}) {
	if !s.featureFlags.Enabled(featureflags.Realtime, 0) {
		return
	}
	s.events.ToAll(eventContext(c), eventType, payload)
}

// publishUnread pushes the recipient's fresh unread count after something
// created a notification for them.
func (s *Server) publishUnread(c *fiber.Ctx, userID uint) {
	count, err := s.notificationService.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return
	}
	s.publishUserEvent(c, userID, EventNotificationsChanged, fiber.Map{"unreadCount": count})
}
