package models

import (
	"strings"
	"time"
)

// LexiconKind is either a single word or a full sentence.
type LexiconKind string

const (
	LexiconWord     LexiconKind = "word"
	LexiconSentence LexiconKind = "sentence"
)

// ParseLexiconKind accepts "word", "words", "sentence" or "sentences".
func ParseLexiconKind(s string) (LexiconKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "words":
		return LexiconWord, true
	case "sentence", "sentences":
		return LexiconSentence, true
	}
	return "", false
}

func (k LexiconKind) Target() TargetKind {
	return TargetKind(k)
}

func (k LexiconKind) TotalKey() string {
	if k == LexiconWord {
		return "totalWords"
	}
	return "totalSentences"
}

// LexiconEntry is a reactable word or sentence with an optional translation.
type LexiconEntry struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Kind        LexiconKind `gorm:"type:varchar(16);not null;index" json:"kind"`
	Text        string      `gorm:"type:text;not null" json:"text"`
	Translation string      `gorm:"type:text" json:"translation,omitempty"`
	Language    string      `gorm:"size:8;not null;default:'ar'" json:"language"`
	AuthorID    uint        `gorm:"not null;index" json:"author_id"`
	Author      User        `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (LexiconEntry) TableName() string {
	return "lexicon_entries"
}

func (e *LexiconEntry) OwnerID() uint { return e.AuthorID }
