package models

import "time"

// FriendRequestStatus is the lifecycle state of a friend request row.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directed request from Sender to Receiver.
// There is at most one row per ordered pair.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SenderID   uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair,priority:1" json:"sender_id"`
	ReceiverID uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair,priority:2;index" json:"receiver_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// Friendship is one direction of an accepted friendship. Accepted pairs are
// always stored as two rows, (a,b) and (b,a).
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friendships_pair,priority:1" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendships_pair,priority:2;index" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`

	Friend User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// FriendshipStatus is the relationship between a viewer and another user.
type FriendshipStatus string

const (
	FriendshipNone            FriendshipStatus = "none"
	FriendshipPendingSent     FriendshipStatus = "pending_sent"
	FriendshipPendingReceived FriendshipStatus = "pending_received"
	FriendshipFriends         FriendshipStatus = "friends"
)

// FriendSuggestion is a candidate friend with the number of mutual friends.
type FriendSuggestion struct {
	User          User  `json:"user"`
	MutualFriends int64 `json:"mutualFriends"`
}
