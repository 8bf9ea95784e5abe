package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. A comment with a non-nil
// ParentCommentID is a reply; its PostID always equals the parent's PostID.
type Comment struct {
	ID              uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Content         string     `json:"content" gorm:"type:text;not null"`
	AuthorID        uuid.UUID  `json:"author_id" gorm:"type:char(36);not null;index"`
	PostID          uuid.UUID  `json:"post_id" gorm:"type:char(36);not null;index"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty" gorm:"type:char(36);index"`
	IsEdited        bool       `json:"is_edited" gorm:"default:false"`
	EditedAt        *time.Time `json:"edited_at,omitempty"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Author User  `json:"-" gorm:"foreignKey:AuthorID"`
	Post   *Post `json:"-" gorm:"foreignKey:PostID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// OwnerID returns the owning user id, satisfying the Owned capability.
func (c *Comment) OwnerID() uuid.UUID {
	return c.AuthorID
}

// LikeTarget returns the like-set identity of the comment.
func (c *Comment) LikeTarget() (LikeTargetType, uuid.UUID) {
	return LikeTargetComment, c.ID
}

// IsReply reports whether the comment has a parent.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
