package models

import "time"

// TargetKind names what a reaction, comment or share points at: one of the
// content kinds or a lexicon kind.
type TargetKind string

// ParseTargetKind accepts singular or plural forms of any reactable kind.
func ParseTargetKind(s string) (TargetKind, bool) {
	if k, ok := ParseContentKind(s); ok {
		return k.Target(), true
	}
	if k, ok := ParseLexiconKind(s); ok {
		return k.Target(), true
	}
	return "", false
}

// IsContent reports whether t is stored in the contents table.
func (t TargetKind) IsContent() bool {
	for _, k := range ContentKinds {
		if TargetKind(k) == t {
			return true
		}
	}
	return false
}

// TargetKinds lists every reactable kind.
func TargetKinds() []TargetKind {
	out := make([]TargetKind, 0, len(ContentKinds)+2)
	for _, k := range ContentKinds {
		out = append(out, k.Target())
	}
	return append(out, LexiconWord.Target(), LexiconSentence.Target())
}

// Like is one user's emoji reaction on one target. A user holds at most one
// reaction per target; reacting again replaces the emoji.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_likes_user_target,priority:1" json:"user_id"`
	TargetKind TargetKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_likes_user_target,priority:2;index:idx_likes_target,priority:1" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_likes_user_target,priority:3;index:idx_likes_target,priority:2" json:"target_id"`
	Emoji      string     `gorm:"size:16;not null" json:"emoji"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ReactionUser is the display subset of a reacting user.
type ReactionUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

// EmojiSummary is one emoji's count and reactors.
type EmojiSummary struct {
	Emoji string         `json:"emoji"`
	Count int            `json:"count"`
	Users []ReactionUser `json:"users"`
}

// ReactionSummary aggregates all reactions on one target.
type ReactionSummary struct {
	Total   int                       `json:"total"`
	Summary []EmojiSummary            `json:"summary"`
	ByEmoji map[string][]ReactionUser `json:"byEmoji"`
}

// EmptyReactionSummary is the summary of a target nobody reacted to.
func EmptyReactionSummary() ReactionSummary {
	return ReactionSummary{
		Summary: []EmojiSummary{},
		ByEmoji: map[string][]ReactionUser{},
	}
}

// ReactionRow is one joined like+user row read by the aggregator.
type ReactionRow struct {
	TargetID  uint
	Emoji     string
	UserID    uint
	Username  string
	FirstName string
	LastName  string
	Avatar    string
}
