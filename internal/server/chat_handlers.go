package server

import (
	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/present"

	"github.com/gofiber/fiber/v2"
)

type messageRequest struct {
	Body string `json:"body"`
}

type directMessageRequest struct {
	RecipientID uint   `json:"recipientId"`
	Body        string `json:"body"`
}

type openConversationRequest struct {
	UserID uint `json:"userId"`
}

func (s *Server) messagesBody(c *fiber.Ctx, page models.Page[models.Message]) fiber.Map {
	return models.Page[present.Message]{
		Items:      s.presenter(c).Messages(page.Items),
		Pagination: page.Pagination,
	}.Body()
}

// publishMessage delivers msg to every participant of a direct conversation
// and refreshes the unread counter of everyone but the sender.
func (s *Server) publishMessage(c *fiber.Ctx, conv *models.Conversation, msg present.Message) {
	senderID := currentUserID(c)
	for _, p := range conv.Participants {
		s.publishUserEvent(c, p.UserID, EventMessageReceived, msg)
		if p.UserID != senderID {
			s.publishUnread(c, p.UserID)
		}
	}
}

// GetGroupMessages handles GET /api/main/messages
// @Summary Group chat history, newest first
// @Tags messages
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} object{items=[]present.Message,pagination=object}
// @Router /main/messages [get]
func (s *Server) GetGroupMessages(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}
	result, err := s.chatService.GroupMessages(c.UserContext(), page)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.messagesBody(c, result))
}

// PostGroupMessage handles POST /api/main/messages
// @Summary Post to the group chat
// @Tags messages
// @Accept json
// @Produce json
// @Param request body messageRequest true "Message"
// @Success 201 {object} present.Message
// @Failure 400 {object} models.ErrorResponse
// @Router /main/messages [post]
func (s *Server) PostGroupMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	msg, _, err := s.chatService.PostGroupMessage(c.UserContext(), currentUserID(c), req.Body)
	if err != nil {
		return respondErr(c, err)
	}

	view := s.presenter(c).Message(msg)
	s.publishBroadcastEvent(c, EventGroupMessage, view)
	return c.Status(fiber.StatusCreated).JSON(view)
}

// SendDirectMessage handles POST /api/main/messages/direct. The conversation
// is created on the first message.
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body directMessageRequest true "Recipient and body"
// @Success 201 {object} present.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /main/messages/direct [post]
func (s *Server) SendDirectMessage(c *fiber.Ctx) error {
	var req directMessageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.RecipientID == 0 {
		return respondErr(c, models.NewFieldError(i18n.FieldRequired, "recipientId"))
	}

	msg, conv, err := s.chatService.SendDirect(c.UserContext(), currentUserID(c), req.RecipientID, req.Body)
	if err != nil {
		return respondErr(c, err)
	}

	view := s.presenter(c).Message(msg)
	s.publishMessage(c, conv, view)
	return c.Status(fiber.StatusCreated).JSON(view)
}

// ListConversations handles GET /api/main/conversations
// @Summary My direct conversations
// @Tags conversations
// @Produce json
// @Success 200 {array} present.Conversation
// @Router /main/conversations [get]
func (s *Server) ListConversations(c *fiber.Ctx) error {
	list, err := s.chatService.ListConversations(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Conversations(list))
}

// OpenConversation handles POST /api/main/conversations
// @Summary Open (or reuse) a direct conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body openConversationRequest true "Other user"
// @Success 200 {object} object{conversationId=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /main/conversations [post]
func (s *Server) OpenConversation(c *fiber.Ctx) error {
	var req openConversationRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.UserID == 0 {
		return respondErr(c, models.NewFieldError(i18n.FieldRequired, "userId"))
	}

	conv, err := s.chatService.OpenDirect(c.UserContext(), currentUserID(c), req.UserID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"conversationId": conv.ID})
}

// GetConversationMessages handles GET /api/main/conversations/:id/messages
// @Summary Messages of a conversation I belong to
// @Tags conversations
// @Produce json
// @Param id path int true "Conversation ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} object{items=[]present.Message,pagination=object}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/conversations/{id}/messages [get]
func (s *Server) GetConversationMessages(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	result, err := s.chatService.Messages(c.UserContext(), currentUserID(c), id, page)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.messagesBody(c, result))
}

// SendConversationMessage handles POST /api/main/conversations/:id/messages
// @Summary Send into an existing conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param id path int true "Conversation ID"
// @Param request body messageRequest true "Message"
// @Success 201 {object} present.Message
// @Failure 403 {object} models.ErrorResponse
// @Router /main/conversations/{id}/messages [post]
func (s *Server) SendConversationMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	msg, conv, err := s.chatService.SendToConversation(c.UserContext(), currentUserID(c), id, req.Body)
	if err != nil {
		return respondErr(c, err)
	}

	view := s.presenter(c).Message(msg)
	s.publishMessage(c, conv, view)
	return c.Status(fiber.StatusCreated).JSON(view)
}

// MarkConversationRead handles POST /api/main/conversations/:id/read
// @Summary Mark a conversation read
// @Tags conversations
// @Produce json
// @Param id path int true "Conversation ID"
// @Success 200 {object} object{conversationId=int}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/conversations/{id}/read [post]
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)
	if err := s.chatService.MarkRead(c.UserContext(), userID, id); err != nil {
		return respondErr(c, err)
	}
	s.publishUserEvent(c, userID, EventConversationRead, fiber.Map{"conversationId": id})
	return c.JSON(fiber.Map{"conversationId": id})
}
