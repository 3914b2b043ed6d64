package repository

import (
	"context"
	"errors"
	"time"

	"rawabit/internal/models"
	"rawabit/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository persists conversations, their participants and messages.
type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, conv *models.Conversation, participantIDs []uint) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	GetConversationByKey(ctx context.Context, key string) (*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error)
	AddParticipant(ctx context.Context, conversationID, userID uint) error
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID uint, page models.PageRequest) ([]models.Message, int64, error)
	ListUserConversations(ctx context.Context, userID uint, kind models.ConversationKind) ([]models.Conversation, error)
	LastMessages(ctx context.Context, conversationIDs []uint) (map[uint]models.Message, error)
	UnreadCounts(ctx context.Context, userID uint, conversationIDs []uint) (map[uint]int64, error)
	MarkRead(ctx context.Context, conversationID, userID uint, at time.Time) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetOrCreateConversation finds conv by its unique key or inserts it, then
// makes sure every participant has a membership row. Concurrent callers
// converge on the same row through the unique key.
func (r *chatRepository) GetOrCreateConversation(ctx context.Context, conv *models.Conversation, participantIDs []uint) (*models.Conversation, error) {
	var out models.Conversation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(conv).Error; err != nil {
			return err
		}
		if err := tx.Where("key = ?", conv.Key).First(&out).Error; err != nil {
			return err
		}
		if len(participantIDs) == 0 {
			return nil
		}
		parts := make([]models.ConversationParticipant, 0, len(participantIDs))
		for _, id := range participantIDs {
			parts = append(parts, models.ConversationParticipant{ConversationID: out.ID, UserID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&parts).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.GetConversation(ctx, out.ID)
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		First(&conv, id).Error
	if err != nil {
		return nil, wrapErr(err, "conversation", id)
	}
	return &conv, nil
}

// GetConversationByKey returns nil, nil when no conversation has key.
func (r *chatRepository) GetConversationByKey(ctx context.Context, key string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&n).Error
	return n > 0, asInternal(err)
}

func (r *chatRepository) AddParticipant(ctx context.Context, conversationID, userID uint) error {
	p := models.ConversationParticipant{ConversationID: conversationID, UserID: userID}
	return asInternal(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error)
}

// CreateMessage stores msg and bumps the conversation's last_message_at.
func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	defer observability.TrackQuery("insert", "messages")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = time.Now()
		}
		if err := tx.Omit(clause.Associations).Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", msg.CreatedAt).Error
	})
	return asInternal(err)
}

// ListMessages returns the page counted back from the newest message, in
// chronological order: page 1 is the latest limit messages.
func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint, page models.PageRequest) ([]models.Message, int64, error) {
	db := readDB(r.db).WithContext(ctx).Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	msgs := []models.Message{}
	if total == 0 {
		return msgs, 0, nil
	}
	if err := paginate(db, page).Preload("Sender").Order("created_at DESC, id DESC").Find(&msgs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, total, nil
}

func (r *chatRepository) ListUserConversations(ctx context.Context, userID uint, kind models.ConversationKind) ([]models.Conversation, error) {
	convs := []models.Conversation{}
	err := readDB(r.db).WithContext(ctx).
		Preload("Participants.User").
		Where("kind = ?", kind).
		Where("id IN (SELECT conversation_id FROM conversation_participants WHERE user_id = ?)", userID).
		Find(&convs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return convs, nil
}

// LastMessages returns the newest message of each conversation in one query.
func (r *chatRepository) LastMessages(ctx context.Context, conversationIDs []uint) (map[uint]models.Message, error) {
	out := make(map[uint]models.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	var msgs []models.Message
	err := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		Where("id IN (SELECT MAX(id) FROM messages WHERE conversation_id IN ? GROUP BY conversation_id)", conversationIDs).
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, m := range msgs {
		out[m.ConversationID] = m
	}
	return out, nil
}

// UnreadCounts counts messages from others newer than the user's last read mark.
func (r *chatRepository) UnreadCounts(ctx context.Context, userID uint, conversationIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ConversationID uint
		Unread         int64
	}
	err := readDB(r.db).WithContext(ctx).
		Table("messages AS m").
		Select("m.conversation_id, COUNT(*) AS unread").
		Joins("JOIN conversation_participants AS p ON p.conversation_id = m.conversation_id AND p.user_id = ?", userID).
		Where("m.conversation_id IN ? AND m.sender_id <> ?", conversationIDs, userID).
		Where("p.last_read_at IS NULL OR m.created_at > p.last_read_at").
		Group("m.conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		out[row.ConversationID] = row.Unread
	}
	return out, nil
}

// MarkRead moves the participant's read mark to at and flags others' messages read.
func (r *chatRepository) MarkRead(ctx context.Context, conversationID, userID uint, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ConversationParticipant{}).
			Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			Update("last_read_at", at).Error; err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
			Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
	})
	return asInternal(err)
}
