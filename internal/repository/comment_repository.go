package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloghub/internal/model"
)

// CommentRepository defines comment persistence operations. Listing and
// counting queries uniformly exclude soft-deleted rows; FindByID does not,
// so inactive comments stay resolvable as parents of existing replies.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	Update(ctx context.Context, comment *model.Comment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListTopLevel(ctx context.Context, postID uuid.UUID, offset, limit int) ([]model.Comment, int64, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, offset, limit int) ([]model.Comment, int64, error)
	CountTopLevel(ctx context.Context, postID uuid.UUID) (int64, error)
	CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository builds a GORM-backed repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment after re-checking that its post still exists,
// inside a transaction so a failed referential check never persists the row.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&model.Post{}).Where("id = ?", comment.PostID).Count(&postCount).Error; err != nil {
			return err
		}
		if postCount == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(comment).Error
	})
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// SoftDelete marks the comment inactive. The row is retained so existing
// replies keep a resolvable parent.
func (r *commentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevel returns active comments without a parent, newest first.
func (r *commentRepository) ListTopLevel(ctx context.Context, postID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	total, err := r.CountTopLevel(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND parent_comment_id IS NULL AND is_active = ?", postID, true).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListReplies returns active replies to a comment, oldest first.
func (r *commentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	total, err := r.CountReplies(ctx, parentID)
	if err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Where("parent_comment_id = ? AND is_active = ?", parentID, true).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) CountTopLevel(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND parent_comment_id IS NULL AND is_active = ?", postID, true).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("parent_comment_id = ? AND is_active = ?", parentID, true).
		Count(&count).Error
	return count, err
}
