package service

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/observability"
	"rawabit/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const maxMessageLength = 2000

// DefaultGroupTitle names the shared group conversation when none is configured.
const DefaultGroupTitle = "الدردشة العامة"

// ChatService manages direct conversations and the shared group chat.
type ChatService struct {
	chatRepo      repository.ChatRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
	groupTitle    string
	now           func() time.Time
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
	groupTitle string,
) *ChatService {
	if groupTitle == "" {
		groupTitle = DefaultGroupTitle
	}
	return &ChatService{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		groupTitle:    groupTitle,
		now:           time.Now,
	}
}

// OpenDirect returns the direct conversation between userID and otherID,
// creating it on first use.
func (s *ChatService) OpenDirect(ctx context.Context, userID, otherID uint) (*models.Conversation, error) {
	if userID == otherID {
		return nil, models.NewValidationError(i18n.MessageSelf)
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	conv := &models.Conversation{
		Kind:      models.ConversationDirect,
		Key:       models.DirectConversationKey(userID, otherID),
		CreatedBy: userID,
	}
	return s.chatRepo.GetOrCreateConversation(ctx, conv, []uint{userID, otherID})
}

// SendDirect opens the direct conversation if needed and appends body.
func (s *ChatService) SendDirect(ctx context.Context, senderID, recipientID uint, body string) (*models.Message, *models.Conversation, error) {
	body, err := cleanMessage(body)
	if err != nil {
		return nil, nil, err
	}
	conv, err := s.OpenDirect(ctx, senderID, recipientID)
	if err != nil {
		return nil, nil, err
	}
	msg, err := s.appendMessage(ctx, conv, senderID, body)
	if err != nil {
		return nil, nil, err
	}
	return msg, conv, nil
}

// SendToConversation appends body to a conversation the sender belongs to.
func (s *ChatService) SendToConversation(ctx context.Context, senderID, conversationID uint, body string) (*models.Message, *models.Conversation, error) {
	body, err := cleanMessage(body)
	if err != nil {
		return nil, nil, err
	}
	conv, err := s.conversationForMember(ctx, conversationID, senderID)
	if err != nil {
		return nil, nil, err
	}
	msg, err := s.appendMessage(ctx, conv, senderID, body)
	if err != nil {
		return nil, nil, err
	}
	return msg, conv, nil
}

func (s *ChatService) appendMessage(ctx context.Context, conv *models.Conversation, senderID uint, body string) (*models.Message, error) {
	ctx, span := observability.StartSpan(ctx, "service", "chat.append",
		attribute.Int64("conversation_id", int64(conv.ID)),
		attribute.String("conversation_kind", string(conv.Kind)),
	)
	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
		MessageType:    "text",
		CreatedAt:      s.now(),
	}
	err := s.chatRepo.CreateMessage(ctx, msg)
	span.End(err)
	if err != nil {
		return nil, err
	}
	observability.MessagesSentTotal.WithLabelValues(string(conv.Kind)).Inc()

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err == nil {
		msg.Sender = sender
	}
	if conv.Kind == models.ConversationDirect && sender != nil {
		for _, p := range conv.Participants {
			if p.UserID == senderID {
				continue
			}
			s.notifications.Notify(ctx, models.NewNotification(models.NotificationMessage, p.UserID, sender, "", 0,
				map[string]interface{}{"conversationId": conv.ID}))
		}
	}
	return msg, nil
}

// ListConversations summarizes every direct conversation of userID, pinned
// first and then by latest activity. Conversations without messages sort last.
func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	convs, err := s.chatRepo.ListUserConversations(ctx, userID, models.ConversationDirect)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.ID)
	}
	last, err := s.chatRepo.LastMessages(ctx, ids)
	if err != nil {
		return nil, err
	}
	unread, err := s.chatRepo.UnreadCounts(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		sum := models.ConversationSummary{
			ConversationID: c.ID,
			UnreadCount:    unread[c.ID],
		}
		for i := range c.Participants {
			if c.Participants[i].UserID != userID {
				u := c.Participants[i].User
				sum.OtherUser = &u
				break
			}
		}
		if m, ok := last[c.ID]; ok {
			m := m
			sum.LastMessage = &m
		}
		out = append(out, sum)
	}
	SortConversations(out)
	return out, nil
}

// SortConversations orders summaries pinned first, then by last message time
// descending. Summaries without a last message go last.
func SortConversations(list []models.ConversationSummary) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		switch {
		case a.LastMessage == nil && b.LastMessage == nil:
			return a.ConversationID > b.ConversationID
		case a.LastMessage == nil:
			return false
		case b.LastMessage == nil:
			return true
		}
		if !a.LastMessage.CreatedAt.Equal(b.LastMessage.CreatedAt) {
			return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
		}
		return a.LastMessage.ID > b.LastMessage.ID
	})
}

// Messages returns a chronological page of the conversation for a member.
func (s *ChatService) Messages(ctx context.Context, userID, conversationID uint, page models.PageRequest) (models.Page[models.Message], error) {
	if _, err := s.conversationForMember(ctx, conversationID, userID); err != nil {
		return models.Page[models.Message]{}, err
	}
	return s.page(ctx, conversationID, page)
}

// MarkRead moves the user's read mark to now.
func (s *ChatService) MarkRead(ctx context.Context, userID, conversationID uint) error {
	if _, err := s.conversationForMember(ctx, conversationID, userID); err != nil {
		return err
	}
	return s.chatRepo.MarkRead(ctx, conversationID, userID, s.now())
}

// GroupConversation returns the shared group chat, creating it if needed.
func (s *ChatService) GroupConversation(ctx context.Context) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversationByKey(ctx, models.GroupConversationKey)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}
	return s.chatRepo.GetOrCreateConversation(ctx, &models.Conversation{
		Kind:  models.ConversationGroup,
		Key:   models.GroupConversationKey,
		Title: s.groupTitle,
	}, nil)
}

// GroupMessages pages the shared group chat. Anyone signed in may read it.
func (s *ChatService) GroupMessages(ctx context.Context, page models.PageRequest) (models.Page[models.Message], error) {
	conv, err := s.GroupConversation(ctx)
	if err != nil {
		return models.Page[models.Message]{}, err
	}
	return s.page(ctx, conv.ID, page)
}

// PostGroupMessage joins the user to the group chat if needed and posts body.
func (s *ChatService) PostGroupMessage(ctx context.Context, userID uint, body string) (*models.Message, *models.Conversation, error) {
	body, err := cleanMessage(body)
	if err != nil {
		return nil, nil, err
	}
	conv, err := s.GroupConversation(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := s.chatRepo.AddParticipant(ctx, conv.ID, userID); err != nil {
		return nil, nil, err
	}
	msg, err := s.appendMessage(ctx, conv, userID, body)
	if err != nil {
		return nil, nil, err
	}
	return msg, conv, nil
}

func (s *ChatService) page(ctx context.Context, conversationID uint, page models.PageRequest) (models.Page[models.Message], error) {
	msgs, total, err := s.chatRepo.ListMessages(ctx, conversationID, page)
	if err != nil {
		return models.Page[models.Message]{}, err
	}
	return models.Page[models.Message]{
		Items:      msgs,
		Pagination: models.NewPagination(page, total, "totalMessages"),
	}, nil
}

func (s *ChatService) conversationForMember(ctx context.Context, conversationID, userID uint) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	for _, p := range conv.Participants {
		if p.UserID == userID {
			return conv, nil
		}
	}
	return nil, models.NewForbiddenError(i18n.NotParticipant)
}

func cleanMessage(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", models.NewValidationError(i18n.MessageEmpty)
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return "", models.NewValidationError(i18n.MessageTooLong, maxMessageLength)
	}
	return body, nil
}
