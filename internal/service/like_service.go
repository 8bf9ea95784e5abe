package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/repository"
)

// LikeResult reports the caller's membership state after a toggle and the
// fresh size of the like set.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// LikeService toggles like-set membership. Posts and comments share the
// same toggle through the Likeable capability.
type LikeService interface {
	TogglePostLike(ctx context.Context, user *model.User, postID uuid.UUID) (*LikeResult, error)
	ToggleCommentLike(ctx context.Context, user *model.User, commentID uuid.UUID) (*LikeResult, error)
}

type likeService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
}

// NewLikeService creates a new like service.
func NewLikeService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
) LikeService {
	return &likeService{
		posts:    posts,
		comments: comments,
		likes:    likes,
	}
}

// TogglePostLike flips the user's membership in the post's like set.
func (s *likeService) TogglePostLike(ctx context.Context, user *model.User, postID uuid.UUID) (*LikeResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return s.toggle(ctx, user.ID, post)
}

// ToggleCommentLike flips the user's membership in the comment's like set.
// Soft-deleted comments cannot be liked.
func (s *likeService) ToggleCommentLike(ctx context.Context, user *model.User, commentID uuid.UUID) (*LikeResult, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if !comment.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return s.toggle(ctx, user.ID, comment)
}

func (s *likeService) toggle(ctx context.Context, userID uuid.UUID, target model.Likeable) (*LikeResult, error) {
	targetType, targetID := target.LikeTarget()

	liked, err := s.likes.Toggle(ctx, userID, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	count, err := s.likes.Count(ctx, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	return &LikeResult{Liked: liked, LikeCount: count}, nil
}
