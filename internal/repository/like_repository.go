package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloghub/internal/model"
)

// LikeRepository defines like-set persistence operations. The like set of an
// entity is the set of user ids with a row for that target; the composite
// unique index keeps membership mutations atomic per (user, target).
type LikeRepository interface {
	Toggle(ctx context.Context, userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) (liked bool, err error)
	Count(ctx context.Context, targetType model.LikeTargetType, targetID uuid.UUID) (int64, error)
	IsLiked(ctx context.Context, userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) (bool, error)
	UserIDs(ctx context.Context, targetType model.LikeTargetType, targetID uuid.UUID) ([]uuid.UUID, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository builds a GORM-backed repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle removes the membership row if present, otherwise inserts it.
// Both branches are single-row operations, so toggles by different users on
// the same target never overwrite each other. A duplicate-key error on the
// insert means a concurrent request already added the row; the membership
// state it reports is still correct.
func (r *likeRepository) Toggle(ctx context.Context, userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&model.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := &model.Like{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if IsDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) Count(ctx context.Context, targetType model.LikeTargetType, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) UserIDs(ctx context.Context, targetType model.LikeTargetType, targetID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
