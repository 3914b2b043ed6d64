package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ConversationKind distinguishes direct conversations from the shared group chat.
type ConversationKind string

const (
	ConversationDirect ConversationKind = "direct"
	ConversationGroup  ConversationKind = "group"
)

// GroupConversationKey identifies the single shared group chat.
const GroupConversationKey = "group:main"

// DirectConversationKey is the canonical key for a pair of users, independent of order.
func DirectConversationKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("dm:%d:%d", a, b)
}

// Conversation is a message thread between its participants.
type Conversation struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Kind          ConversationKind `gorm:"type:varchar(16);not null;default:'direct'" json:"kind"`
	Key           string           `gorm:"size:64;not null;uniqueIndex" json:"key"`
	Title         string           `gorm:"size:120" json:"title,omitempty"`
	CreatedBy     uint             `json:"created_by"`
	LastMessageAt *time.Time       `gorm:"index" json:"last_message_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

// ConversationParticipant tracks a user's membership and read position.
type ConversationParticipant struct {
	ConversationID uint       `gorm:"primaryKey" json:"conversation_id"`
	UserID         uint       `gorm:"primaryKey;index" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID" json:"user"`
	JoinedAt       time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
}

// Message is a plain-text message in a conversation.
type Message struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	ConversationID uint              `gorm:"not null;index:idx_messages_conversation_created,priority:1" json:"conversation_id"`
	SenderID       uint              `gorm:"not null;index" json:"sender_id"`
	Sender         *User             `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Body           string            `gorm:"type:text;not null" json:"body"`
	MessageType    string            `gorm:"size:20;not null;default:'text'" json:"message_type"`
	Metadata       datatypes.JSONMap `json:"metadata,omitempty"`
	IsRead         bool              `gorm:"not null;default:false" json:"is_read"`
	ReadAt         *time.Time        `json:"read_at,omitempty"`
	CreatedAt      time.Time         `gorm:"index:idx_messages_conversation_created,priority:2" json:"created_at"`
}

// ConversationSummary is one entry of a user's conversation list.
type ConversationSummary struct {
	ConversationID uint     `json:"conversationId"`
	OtherUser      *User    `json:"otherUser"`
	LastMessage    *Message `json:"lastMessage"`
	UnreadCount    int64    `json:"unreadCount"`
	Pinned         bool     `json:"pinned"`
}
