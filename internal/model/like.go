package model

import (
	"time"

	"github.com/google/uuid"
)

// LikeTargetType names the kind of entity a like row points at.
type LikeTargetType string

const (
	LikeTargetPost    LikeTargetType = "post"
	LikeTargetComment LikeTargetType = "comment"
)

// Like is one element of a like set: user X likes target Y. The composite
// unique index makes membership mutations atomic at the database level, so
// concurrent likes by different users never overwrite each other.
type Like struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_like_member,priority:1"`
	TargetType LikeTargetType `json:"target_type" gorm:"type:varchar(10);not null;uniqueIndex:idx_like_member,priority:2"`
	TargetID   uuid.UUID      `json:"target_id" gorm:"type:char(36);not null;uniqueIndex:idx_like_member,priority:3;index"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Owned is the capability of resources with a single owning user.
type Owned interface {
	OwnerID() uuid.UUID
}

// Likeable is the capability of entities carrying a like set.
type Likeable interface {
	LikeTarget() (LikeTargetType, uuid.UUID)
}
