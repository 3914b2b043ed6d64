package server

import (
	"rawabit/internal/authz"
	"rawabit/internal/models"
	"rawabit/internal/present"

	"github.com/gofiber/fiber/v2"
)

type readRequest struct {
	Read *bool `json:"read"`
}

func (s *Server) loadNotification(c *fiber.Ctx) (authz.Resource, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	return s.notificationService.Get(c.UserContext(), id)
}

// GetNotifications handles GET /api/main/notifications
// @Summary My notifications, newest first
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} object{items=[]present.Notification,pagination=object}
// @Router /main/notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}
	unreadOnly := c.QueryBool("unread", false)

	result, err := s.notificationService.List(c.UserContext(), currentUserID(c), unreadOnly, page)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(models.Page[present.Notification]{
		Items:      s.presenter(c).Notifications(result.Items),
		Pagination: result.Pagination,
	}.Body())
}

// GetUnreadCount handles GET /api/main/notifications/unread-count
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} object{unreadCount=int}
// @Router /main/notifications/unread-count [get]
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"unreadCount": count})
}

// SetNotificationRead handles PATCH /api/main/notifications/:id/read.
// Recipient only. A missing body marks the notification read.
// @Summary Mark one notification read or unread
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Param request body readRequest false "Read state"
// @Success 200 {object} present.Notification
// @Failure 403 {object} models.ErrorResponse
// @Router /main/notifications/{id}/read [patch]
func (s *Server) SetNotificationRead(c *fiber.Ctx) error {
	n := authorizedResource[*models.Notification](c)
	read := true
	if len(c.Body()) > 0 {
		var req readRequest
		if err := parseBody(c, &req); err != nil {
			return nil
		}
		if req.Read != nil {
			read = *req.Read
		}
	}

	updated, err := s.notificationService.SetRead(c.UserContext(), n, read)
	if err != nil {
		return respondErr(c, err)
	}
	s.publishUnread(c, updated.UserID)
	return c.JSON(s.presenter(c).Notification(updated))
}

// MarkAllNotificationsRead handles POST /api/main/notifications/read-all
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Success 200 {object} object{updated=int}
// @Router /main/notifications/read-all [post]
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := currentUserID(c)
	updated, err := s.notificationService.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	s.publishUserEvent(c, userID, EventNotificationsChanged, fiber.Map{"unreadCount": 0})
	return c.JSON(fiber.Map{"updated": updated})
}
