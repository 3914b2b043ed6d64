// Package present maps stored rows to localized response shapes.
package present

import (
	"time"

	"rawabit/internal/i18n"
	"rawabit/internal/models"
)

// Presenter renders rows for one request language at a fixed instant.
type Presenter struct {
	Lang i18n.Lang
	Now  time.Time
}

func New(lang i18n.Lang, now time.Time) Presenter {
	return Presenter{Lang: lang, Now: now}
}

type UserSummary struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type Profile struct {
	UserSummary
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email,omitempty"`
	Bio           string `json:"bio"`
	Role          string `json:"role"`
	JoinedAtLabel string `json:"joinedAtLabel"`
}

type Item struct {
	ID              uint                    `json:"id"`
	Kind            models.ContentKind      `json:"kind"`
	Title           string                  `json:"title"`
	Body            string                  `json:"body"`
	Category        string                  `json:"category,omitempty"`
	Subcategory     string                  `json:"subcategory,omitempty"`
	ImageURL        string                  `json:"imageUrl"`
	Views           int64                   `json:"views"`
	Price           *float64                `json:"price,omitempty"`
	Currency        string                  `json:"currency,omitempty"`
	Pages           *int                    `json:"pages,omitempty"`
	DurationSeconds *int                    `json:"durationSeconds,omitempty"`
	TargetAmount    *float64                `json:"targetAmount,omitempty"`
	Answered        *bool                   `json:"answered,omitempty"`
	Attributes      map[string]interface{}  `json:"attributes,omitempty"`
	Author          UserSummary             `json:"author"`
	LikesCount      int64                   `json:"likesCount"`
	CommentsCount   int64                   `json:"commentsCount"`
	SharesCount     int64                   `json:"sharesCount"`
	Reactions       *models.ReactionSummary `json:"reactions,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedAtLabel  string                  `json:"createdAtLabel"`
	CreatedAtDate   string                  `json:"createdAtDate"`
}

type Entry struct {
	ID             uint                    `json:"id"`
	Kind           models.LexiconKind      `json:"kind"`
	Text           string                  `json:"text"`
	Translation    string                  `json:"translation,omitempty"`
	Language       string                  `json:"language"`
	Author         UserSummary             `json:"author"`
	Reactions      *models.ReactionSummary `json:"reactions,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedAtLabel string                  `json:"createdAtLabel"`
}

type Comment struct {
	ID             uint              `json:"id"`
	TargetKind     models.TargetKind `json:"targetKind"`
	TargetID       uint              `json:"targetId"`
	Body           string            `json:"body"`
	User           UserSummary       `json:"user"`
	CreatedAt      time.Time         `json:"createdAt"`
	CreatedAtLabel string            `json:"createdAtLabel"`
}

type Message struct {
	ID             uint         `json:"id"`
	ConversationID uint         `json:"conversationId"`
	Sender         *UserSummary `json:"sender,omitempty"`
	Body           string       `json:"body"`
	MessageType    string       `json:"messageType"`
	IsRead         bool         `json:"isRead"`
	CreatedAt      time.Time    `json:"createdAt"`
	CreatedAtLabel string       `json:"createdAtLabel"`
}

type Conversation struct {
	ConversationID uint         `json:"conversationId"`
	OtherUser      *UserSummary `json:"otherUser"`
	LastMessage    *Message     `json:"lastMessage"`
	UnreadCount    int64        `json:"unreadCount"`
	Pinned         bool         `json:"pinned"`
}

type Notification struct {
	ID             uint                    `json:"id"`
	Type           models.NotificationType `json:"type"`
	Message        string                  `json:"message"`
	Actor          *UserSummary            `json:"actor,omitempty"`
	TargetKind     string                  `json:"targetKind,omitempty"`
	TargetID       *uint                   `json:"targetId,omitempty"`
	Metadata       map[string]interface{}  `json:"metadata,omitempty"`
	Read           bool                    `json:"read"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedAtLabel string                  `json:"createdAtLabel"`
}

type FriendRequest struct {
	ID        uint                       `json:"id"`
	Sender    *UserSummary               `json:"sender,omitempty"`
	Receiver  *UserSummary               `json:"receiver,omitempty"`
	Status    models.FriendRequestStatus `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
}

type Suggestion struct {
	User          UserSummary `json:"user"`
	MutualFriends int64       `json:"mutualFriends"`
}

func (p Presenter) label(t time.Time) string {
	return RelativeTime(p.Lang, t, p.Now)
}

func (p Presenter) User(u *models.User) UserSummary {
	if u == nil {
		return UserSummary{Avatar: AvatarURL(nil)}
	}
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
		Avatar:      AvatarURL(u),
	}
}

func (p Presenter) userPtr(u *models.User) *UserSummary {
	if u == nil || u.ID == 0 {
		return nil
	}
	s := p.User(u)
	return &s
}

func (p Presenter) Users(users []models.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, p.User(&users[i]))
	}
	return out
}

// Profile includes the email only when self is true.
func (p Presenter) Profile(u *models.User, self bool) Profile {
	out := Profile{
		UserSummary:   p.User(u),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Bio:           u.Bio,
		Role:          u.Role,
		JoinedAtLabel: FormatDate(p.Lang, u.CreatedAt),
	}
	if self {
		out.Email = u.Email
	}
	return out
}

// Item renders c. sum may be nil when reactions were not requested.
func (p Presenter) Item(c *models.Content, sum *models.ReactionSummary) Item {
	return Item{
		ID:              c.ID,
		Kind:            c.Kind,
		Title:           c.Title,
		Body:            c.Body,
		Category:        c.Category,
		Subcategory:     c.Subcategory,
		ImageURL:        imageOrPlaceholder(c.ImageURL, string(c.Kind)),
		Views:           c.Views,
		Price:           c.Price,
		Currency:        c.Currency,
		Pages:           c.Pages,
		DurationSeconds: c.DurationSeconds,
		TargetAmount:    c.TargetAmount,
		Answered:        c.Answered,
		Attributes:      c.Attributes,
		Author:          p.User(&c.Author),
		LikesCount:      c.LikesCount,
		CommentsCount:   c.CommentsCount,
		SharesCount:     c.SharesCount,
		Reactions:       sum,
		CreatedAt:       c.CreatedAt,
		CreatedAtLabel:  p.label(c.CreatedAt),
		CreatedAtDate:   FormatDate(p.Lang, c.CreatedAt),
	}
}

// Items renders a listing, attaching each item's reaction summary.
func (p Presenter) Items(items []models.Content, sums map[uint]models.ReactionSummary) []Item {
	out := make([]Item, 0, len(items))
	for i := range items {
		var sum *models.ReactionSummary
		if s, ok := sums[items[i].ID]; ok {
			sum = &s
		}
		out = append(out, p.Item(&items[i], sum))
	}
	return out
}

func (p Presenter) Entry(e *models.LexiconEntry, sum *models.ReactionSummary) Entry {
	return Entry{
		ID:             e.ID,
		Kind:           e.Kind,
		Text:           e.Text,
		Translation:    e.Translation,
		Language:       e.Language,
		Author:         p.User(&e.Author),
		Reactions:      sum,
		CreatedAt:      e.CreatedAt,
		CreatedAtLabel: p.label(e.CreatedAt),
	}
}

func (p Presenter) Entries(entries []models.LexiconEntry, sums map[uint]models.ReactionSummary) []Entry {
	out := make([]Entry, 0, len(entries))
	for i := range entries {
		var sum *models.ReactionSummary
		if s, ok := sums[entries[i].ID]; ok {
			sum = &s
		}
		out = append(out, p.Entry(&entries[i], sum))
	}
	return out
}

func (p Presenter) Comment(c *models.Comment) Comment {
	return Comment{
		ID:             c.ID,
		TargetKind:     c.TargetKind,
		TargetID:       c.TargetID,
		Body:           c.Body,
		User:           p.User(&c.User),
		CreatedAt:      c.CreatedAt,
		CreatedAtLabel: p.label(c.CreatedAt),
	}
}

func (p Presenter) Comments(comments []models.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for i := range comments {
		out = append(out, p.Comment(&comments[i]))
	}
	return out
}

func (p Presenter) Message(m *models.Message) Message {
	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         p.userPtr(m.Sender),
		Body:           m.Body,
		MessageType:    m.MessageType,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
		CreatedAtLabel: p.label(m.CreatedAt),
	}
}

func (p Presenter) Messages(msgs []models.Message) []Message {
	out := make([]Message, 0, len(msgs))
	for i := range msgs {
		out = append(out, p.Message(&msgs[i]))
	}
	return out
}

func (p Presenter) Conversations(list []models.ConversationSummary) []Conversation {
	out := make([]Conversation, 0, len(list))
	for _, s := range list {
		c := Conversation{
			ConversationID: s.ConversationID,
			OtherUser:      p.userPtr(s.OtherUser),
			UnreadCount:    s.UnreadCount,
			Pinned:         s.Pinned,
		}
		if s.LastMessage != nil {
			m := p.Message(s.LastMessage)
			c.LastMessage = &m
		}
		out = append(out, c)
	}
	return out
}

// Notification re-renders the stored text in the request language.
func (p Presenter) Notification(n *models.Notification) Notification {
	return Notification{
		ID:             n.ID,
		Type:           n.Type,
		Message:        n.Text(p.Lang),
		Actor:          p.userPtr(n.Actor),
		TargetKind:     n.TargetKind,
		TargetID:       n.TargetID,
		Metadata:       n.Metadata,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
		CreatedAtLabel: p.label(n.CreatedAt),
	}
}

func (p Presenter) Notifications(list []models.Notification) []Notification {
	out := make([]Notification, 0, len(list))
	for i := range list {
		out = append(out, p.Notification(&list[i]))
	}
	return out
}

func (p Presenter) FriendRequests(reqs []models.FriendRequest) []FriendRequest {
	out := make([]FriendRequest, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		out = append(out, FriendRequest{
			ID:        r.ID,
			Sender:    p.userPtr(&r.Sender),
			Receiver:  p.userPtr(&r.Receiver),
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func (p Presenter) Suggestions(list []models.FriendSuggestion) []Suggestion {
	out := make([]Suggestion, 0, len(list))
	for i := range list {
		out = append(out, Suggestion{User: p.User(&list[i].User), MutualFriends: list[i].MutualFriends})
	}
	return out
}
