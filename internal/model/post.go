package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus represents the publication status of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// ExcerptLength is the number of content characters used when no
// explicit excerpt is supplied.
const ExcerptLength = 150

// Post represents a user-authored post.
type Post struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Excerpt     string     `json:"excerpt" gorm:"size:512"`
	AuthorID    uuid.UUID  `json:"author_id" gorm:"type:char(36);not null;index"`
	Tags        []string   `json:"tags" gorm:"serializer:json;type:json"`
	Status      PostStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	IsPublished bool       `json:"is_published" gorm:"default:false;index"`
	ViewCount   uint64     `json:"view_count" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OwnerID returns the owning user id, satisfying the Owned capability.
func (p *Post) OwnerID() uuid.UUID {
	return p.AuthorID
}

// LikeTarget returns the like-set identity of the post.
func (p *Post) LikeTarget() (LikeTargetType, uuid.UUID) {
	return LikeTargetPost, p.ID
}

// DeriveExcerpt returns the leading ExcerptLength characters of content.
// Multi-byte text is cut on rune boundaries.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= ExcerptLength {
		return content
	}
	return string(runes[:ExcerptLength])
}
