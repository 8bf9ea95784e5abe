package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
)

// fakeLikeRepo is an in-memory like set with the same atomicity contract as
// the real repository: every toggle is a single guarded membership mutation.
type fakeLikeRepo struct {
	mu      sync.Mutex
	members map[string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{members: make(map[string]bool)}
}

func likeKey(userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) string {
	return fmt.Sprintf("%s|%s|%s", userID, targetType, targetID)
}

func (f *fakeLikeRepo) Toggle(ctx context.Context, userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey(userID, targetType, targetID)
	if f.members[key] {
		delete(f.members, key)
		return false, nil
	}
	f.members[key] = true
	return true, nil
}

func (f *fakeLikeRepo) Count(ctx context.Context, targetType model.LikeTargetType, targetID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	suffix := fmt.Sprintf("|%s|%s", targetType, targetID)
	var count int64
	for key := range f.members {
		if len(key) >= len(suffix) && key[len(key)-len(suffix):] == suffix {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) IsLiked(ctx context.Context, userID uuid.UUID, targetType model.LikeTargetType, targetID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[likeKey(userID, targetType, targetID)], nil
}

func (f *fakeLikeRepo) UserIDs(ctx context.Context, targetType model.LikeTargetType, targetID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func TestLikeService_ToggleIsAnInvolution(t *testing.T) {
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}
	postID := uuid.New()
	post := &model.Post{ID: postID, AuthorID: uuid.New()}

	mockPosts := new(MockPostRepository)
	mockPosts.On("FindByID", mock.Anything, postID).Return(post, nil)

	service := NewLikeService(mockPosts, new(MockCommentRepository), newFakeLikeRepo())

	first, err := service.TogglePostLike(context.Background(), user, postID)
	assert.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, int64(1), first.LikeCount)

	second, err := service.TogglePostLike(context.Background(), user, postID)
	assert.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, int64(0), second.LikeCount)
}

func TestLikeService_ConcurrentTogglesByDistinctUsers(t *testing.T) {
	postID := uuid.New()
	post := &model.Post{ID: postID, AuthorID: uuid.New()}

	mockPosts := new(MockPostRepository)
	mockPosts.On("FindByID", mock.Anything, postID).Return(post, nil)

	likes := newFakeLikeRepo()
	service := NewLikeService(mockPosts, new(MockCommentRepository), likes)

	userA := &model.User{ID: uuid.New(), Role: model.RoleUser}
	userB := &model.User{ID: uuid.New(), Role: model.RoleUser}

	var wg sync.WaitGroup
	for _, user := range []*model.User{userA, userB} {
		wg.Add(1)
		go func(u *model.User) {
			defer wg.Done()
			_, err := service.TogglePostLike(context.Background(), u, postID)
			assert.NoError(t, err)
		}(user)
	}
	wg.Wait()

	count, err := likes.Count(context.Background(), model.LikeTargetPost, postID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLikeService_CommentLikes(t *testing.T) {
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}
	commentID := uuid.New()

	t.Run("toggle on an active comment", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(&model.Comment{
			ID:       commentID,
			IsActive: true,
		}, nil)

		service := NewLikeService(new(MockPostRepository), mockComments, newFakeLikeRepo())
		result, err := service.ToggleCommentLike(context.Background(), user, commentID)

		assert.NoError(t, err)
		assert.True(t, result.Liked)
		assert.Equal(t, int64(1), result.LikeCount)
		mockComments.AssertExpectations(t)
	})

	t.Run("soft-deleted comment cannot be liked", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(&model.Comment{
			ID:       commentID,
			IsActive: false,
		}, nil)

		service := NewLikeService(new(MockPostRepository), mockComments, newFakeLikeRepo())
		result, err := service.ToggleCommentLike(context.Background(), user, commentID)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		mockComments.AssertExpectations(t)
	})
}

func TestLikeService_MissingTargets(t *testing.T) {
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}

	t.Run("missing post", func(t *testing.T) {
		postID := uuid.New()
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

		service := NewLikeService(mockPosts, new(MockCommentRepository), newFakeLikeRepo())
		result, err := service.TogglePostLike(context.Background(), user, postID)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("missing comment", func(t *testing.T) {
		commentID := uuid.New()
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(nil, gorm.ErrRecordNotFound)

		service := NewLikeService(new(MockPostRepository), mockComments, newFakeLikeRepo())
		result, err := service.ToggleCommentLike(context.Background(), user, commentID)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}
