package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a text reply attached to any reactable target.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	TargetKind TargetKind     `gorm:"type:varchar(16);not null;index:idx_comments_target,priority:1" json:"target_kind"`
	TargetID   uint           `gorm:"not null;index:idx_comments_target,priority:2" json:"target_id"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Comment) OwnerID() uint { return c.UserID }

// Share records a user re-sharing a target, with an optional note.
type Share struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user"`
	TargetKind TargetKind `gorm:"type:varchar(16);not null;index:idx_shares_target,priority:1" json:"target_kind"`
	TargetID   uint       `gorm:"not null;index:idx_shares_target,priority:2" json:"target_id"`
	Note       string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
