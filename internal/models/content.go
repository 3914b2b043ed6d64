package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentKind discriminates the rows of the contents table.
type ContentKind string

const (
	KindPost     ContentKind = "post"
	KindBook     ContentKind = "book"
	KindIdea     ContentKind = "idea"
	KindImage    ContentKind = "image"
	KindVideo    ContentKind = "video"
	KindTruth    ContentKind = "truth"
	KindQuestion ContentKind = "question"
	KindAd       ContentKind = "ad"
	KindProduct  ContentKind = "product"
)

// ContentKinds lists every content kind in display order.
var ContentKinds = []ContentKind{
	KindPost, KindBook, KindIdea, KindImage, KindVideo,
	KindTruth, KindQuestion, KindAd, KindProduct,
}

// ParseContentKind accepts singular or plural forms ("post", "posts").
func ParseContentKind(s string) (ContentKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range ContentKinds {
		if s == string(k) || s == k.Plural() {
			return k, true
		}
	}
	return "", false
}

// Plural is the collection name used in routes and totals.
func (k ContentKind) Plural() string {
	return string(k) + "s"
}

// TotalKey is the pagination total field, e.g. "totalPosts".
func (k ContentKind) TotalKey() string {
	p := k.Plural()
	return "total" + strings.ToUpper(p[:1]) + p[1:]
}

// Target converts k to the reaction target kind.
func (k ContentKind) Target() TargetKind {
	return TargetKind(k)
}

// HasPrice reports whether the kind carries a price.
func (k ContentKind) HasPrice() bool {
	return k == KindAd || k == KindProduct
}

// Content is a single row of any content kind. Type-specific fields are
// nil unless the kind uses them.
type Content struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Kind            ContentKind       `gorm:"type:varchar(16);not null;index:idx_contents_kind_created,priority:1" json:"kind"`
	Title           string            `gorm:"size:200;not null" json:"title"`
	Body            string            `gorm:"type:text" json:"body"`
	Category        string            `gorm:"size:100;index" json:"category,omitempty"`
	Subcategory     string            `gorm:"size:100" json:"subcategory,omitempty"`
	AuthorID        uint              `gorm:"not null;index" json:"author_id"`
	Author          User              `gorm:"foreignKey:AuthorID" json:"author"`
	ImageURL        string            `json:"image_url"`
	Views           int64             `gorm:"not null;default:0" json:"views"`
	Price           *float64          `json:"price,omitempty"`
	Currency        string            `gorm:"size:8" json:"currency,omitempty"`
	Pages           *int              `json:"pages,omitempty"`
	DurationSeconds *int              `json:"duration_seconds,omitempty"`
	TargetAmount    *float64          `json:"target_amount,omitempty"`
	Answered        *bool             `json:"answered,omitempty"`
	Attributes      datatypes.JSONMap `json:"attributes,omitempty"`

	// Computed at query time
	LikesCount    int64 `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount int64 `gorm:"->;-:migration" json:"comments_count"`
	SharesCount   int64 `gorm:"->;-:migration" json:"shares_count"`

	CreatedAt time.Time      `gorm:"index:idx_contents_kind_created,priority:2" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Content) TableName() string {
	return "contents"
}

func (c *Content) OwnerID() uint { return c.AuthorID }

// ContentFilter narrows a content listing.
type ContentFilter struct {
	Kind        ContentKind
	Category    string
	Subcategory string
	Search      string
	AuthorID    uint
}
