package models

import (
	"fmt"
	"time"

	"rawabit/internal/i18n"

	"gorm.io/datatypes"
)

// NotificationType names the event a notification reports.
type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
	NotificationReaction      NotificationType = "reaction"
	NotificationComment       NotificationType = "comment"
	NotificationShare         NotificationType = "share"
	NotificationMessage       NotificationType = "message"
)

// Notification is written once; only its read state changes afterwards.
type Notification struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"not null;index:idx_notifications_user_read,priority:1" json:"user_id"`
	ActorID    *uint             `json:"actor_id,omitempty"`
	Actor      *User             `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Type       NotificationType  `gorm:"type:varchar(32);not null" json:"type"`
	Message    string            `gorm:"type:text;not null" json:"message"`
	TargetKind string            `gorm:"size:16" json:"target_kind,omitempty"`
	TargetID   *uint             `json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	Read       bool              `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2" json:"read"`
	ReadAt     *time.Time        `json:"read_at,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (n *Notification) OwnerID() uint { return n.UserID }

// Metadata keys the notification text is rebuilt from.
const (
	MetaActorName  = "actorName"
	MetaTargetKind = "targetKind"
	MetaEmoji      = "emoji"
)

// NewNotification builds a notification for recipientID caused by actor. The
// stored message is Arabic; Text re-renders it for other languages.
func NewNotification(typ NotificationType, recipientID uint, actor *User, target TargetKind, targetID uint, extra map[string]interface{}) *Notification {
	meta := datatypes.JSONMap{}
	for k, v := range extra {
		meta[k] = v
	}
	n := &Notification{
		UserID:     recipientID,
		Type:       typ,
		TargetKind: string(target),
		Metadata:   meta,
	}
	if actor != nil {
		id := actor.ID
		n.ActorID = &id
		meta[MetaActorName] = actor.DisplayName()
	}
	if target != "" {
		meta[MetaTargetKind] = string(target)
	}
	if targetID != 0 {
		id := targetID
		n.TargetID = &id
	}
	n.Message = n.Text(i18n.Arabic)
	return n
}

// Text renders the notification in lang from its type and metadata. Unknown
// types fall back to the stored message.
func (n *Notification) Text(lang i18n.Lang) string {
	actor := n.metaString(MetaActorName)
	if actor == "" && n.Actor != nil {
		actor = n.Actor.DisplayName()
	}
	target := i18n.Resource(lang, n.metaString(MetaTargetKind))

	switch n.Type {
	case NotificationReaction:
		return i18n.T(lang, i18n.NotifyReaction, actor, target, n.metaString(MetaEmoji))
	case NotificationComment:
		return i18n.T(lang, i18n.NotifyComment, actor, target)
	case NotificationShare:
		return i18n.T(lang, i18n.NotifyShare, actor, target)
	case NotificationFriendRequest:
		return i18n.T(lang, i18n.NotifyFriendRequest, actor)
	case NotificationFriendAccept:
		return i18n.T(lang, i18n.NotifyFriendAccept, actor)
	case NotificationMessage:
		return i18n.T(lang, i18n.NotifyMessage, actor)
	}
	return n.Message
}

func (n *Notification) metaString(key string) string {
	v, ok := n.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
