package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloghub/internal/auth"
	"bloghub/internal/cache"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/repository"
)

// CommentView is a comment enriched with its derived counters.
type CommentView struct {
	model.Comment
	LikeCount    int64 `json:"like_count"`
	RepliesCount int64 `json:"replies_count"`
}

// CommentService handles the comment lifecycle, including threaded replies
// and soft deletion.
type CommentService interface {
	Create(ctx context.Context, author *model.User, postID uuid.UUID, parentID *uuid.UUID, content string) (*model.Comment, error)
	Update(ctx context.Context, principal *model.User, id uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, principal *model.User, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*CommentView, error)
	ListTopLevel(ctx context.Context, postID uuid.UUID, page, limit int) ([]CommentView, int64, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, page, limit int) ([]CommentView, int64, error)
}

type commentService struct {
	comments repository.CommentRepository
	likes    repository.LikeRepository
	cache    *cache.Client
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	cacheClient *cache.Client,
) CommentService {
	return &commentService{
		comments: comments,
		likes:    likes,
		cache:    cacheClient,
	}
}

// Create stores a new top-level comment or reply. For replies the post is
// always inherited from the parent; a caller-supplied post id is ignored.
// The parent lookup happens before anything is persisted, so a missing
// parent never leaves a partial write behind.
func (s *commentService) Create(ctx context.Context, author *model.User, postID uuid.UUID, parentID *uuid.UUID, content string) (*model.Comment, error) {
	if parentID != nil {
		parent, err := s.comments.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("find parent comment: %w", err)
		}
		postID = parent.PostID
	}

	comment := &model.Comment{
		Content:         content,
		AuthorID:        author.ID,
		PostID:          postID,
		ParentCommentID: parentID,
		IsActive:        true,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.cache.Delete(ctx, cache.CommentCountKey(postID))
	return comment, nil
}

// Update replaces the comment content after an ownership check. The first
// content change flips IsEdited and stamps EditedAt; the flag is never reset.
func (s *commentService) Update(ctx context.Context, principal *model.User, id uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(principal, comment); err != nil {
		return nil, err
	}

	if content != comment.Content {
		now := time.Now().UTC()
		comment.Content = content
		comment.IsEdited = true
		comment.EditedAt = &now
		if err := s.comments.Update(ctx, comment); err != nil {
			return nil, fmt.Errorf("update comment: %w", err)
		}
	}
	return comment, nil
}

// Delete soft-deletes the comment after an ownership check. The row is kept
// so existing replies still resolve their parent.
func (s *commentService) Delete(ctx context.Context, principal *model.User, id uuid.UUID) error {
	comment, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckOwnership(principal, comment); err != nil {
		return err
	}

	if err := s.comments.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("soft delete comment: %w", err)
	}

	s.cache.Delete(ctx, cache.CommentCountKey(comment.PostID))
	return nil
}

// Get returns a single active comment with its counters. Soft-deleted
// comments are not served directly even though their rows persist.
func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*CommentView, error) {
	comment, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.enrich(ctx, *comment)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// ListTopLevel returns the active top-level comments of a post, newest first.
func (s *commentService) ListTopLevel(ctx context.Context, postID uuid.UUID, page, limit int) ([]CommentView, int64, error) {
	page, limit = normalizePage(page, limit)
	comments, total, err := s.comments.ListTopLevel(ctx, postID, pageOffset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	views, err := s.enrichAll(ctx, comments)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListReplies returns the active replies of a comment, oldest first.
func (s *commentService) ListReplies(ctx context.Context, parentID uuid.UUID, page, limit int) ([]CommentView, int64, error) {
	page, limit = normalizePage(page, limit)
	comments, total, err := s.comments.ListReplies(ctx, parentID, pageOffset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}
	views, err := s.enrichAll(ctx, comments)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *commentService) enrichAll(ctx context.Context, comments []model.Comment) ([]CommentView, error) {
	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		view, err := s.enrich(ctx, comment)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *commentService) enrich(ctx context.Context, comment model.Comment) (CommentView, error) {
	likeCount, err := s.likes.Count(ctx, model.LikeTargetComment, comment.ID)
	if err != nil {
		return CommentView{}, fmt.Errorf("count likes: %w", err)
	}
	repliesCount, err := s.comments.CountReplies(ctx, comment.ID)
	if err != nil {
		return CommentView{}, fmt.Errorf("count replies: %w", err)
	}
	return CommentView{
		Comment:      comment,
		LikeCount:    likeCount,
		RepliesCount: repliesCount,
	}, nil
}

// findActive loads a comment and treats soft-deleted rows as absent for
// mutation and direct reads.
func (s *commentService) findActive(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if !comment.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return comment, nil
}
