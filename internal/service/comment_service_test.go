package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
)

func newCommentService(comments *MockCommentRepository, likes *MockLikeRepository) CommentService {
	return NewCommentService(comments, likes, nil)
}

func TestCommentService_Create(t *testing.T) {
	author := &model.User{ID: uuid.New(), Role: model.RoleUser}
	postID := uuid.New()
	parentPostID := uuid.New()
	parentID := uuid.New()

	tests := []struct {
		name           string
		postID         uuid.UUID
		parentID       *uuid.UUID
		setupMock      func(*MockCommentRepository)
		expectedError  error
		expectedPostID uuid.UUID
	}{
		{
			name:   "top-level comment",
			postID: postID,
			setupMock: func(m *MockCommentRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedPostID: postID,
		},
		{
			name:     "reply inherits the parent's post, caller value ignored",
			postID:   postID, // deliberately different from the parent's post
			parentID: &parentID,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, parentID).Return(&model.Comment{
					ID:       parentID,
					PostID:   parentPostID,
					IsActive: true,
				}, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedPostID: parentPostID,
		},
		{
			name:     "reply to a soft-deleted parent still threads correctly",
			postID:   postID,
			parentID: &parentID,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, parentID).Return(&model.Comment{
					ID:       parentID,
					PostID:   parentPostID,
					IsActive: false,
				}, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedPostID: parentPostID,
		},
		{
			name:     "missing parent",
			postID:   postID,
			parentID: &parentID,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, parentID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:   "missing post",
			postID: postID,
			setupMock: func(m *MockCommentRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComments := new(MockCommentRepository)
			tt.setupMock(mockComments)

			service := newCommentService(mockComments, new(MockLikeRepository))
			comment, err := service.Create(context.Background(), author, tt.postID, tt.parentID, "a fine comment")

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPostID, comment.PostID)
				assert.Equal(t, author.ID, comment.AuthorID)
				assert.Equal(t, tt.parentID, comment.ParentCommentID)
				assert.True(t, comment.IsActive)
				assert.False(t, comment.IsEdited)
			}

			mockComments.AssertExpectations(t)
		})
	}
}

func TestCommentService_Update(t *testing.T) {
	ownerID := uuid.New()
	commentID := uuid.New()
	owner := &model.User{ID: ownerID, Role: model.RoleUser}
	stranger := &model.User{ID: uuid.New(), Role: model.RoleUser}

	existing := func() *model.Comment {
		return &model.Comment{
			ID:       commentID,
			Content:  "original",
			AuthorID: ownerID,
			PostID:   uuid.New(),
			IsActive: true,
		}
	}

	t.Run("content change marks the comment edited", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(existing(), nil)
		mockComments.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		comment, err := service.Update(context.Background(), owner, commentID, "revised")

		assert.NoError(t, err)
		assert.Equal(t, "revised", comment.Content)
		assert.True(t, comment.IsEdited)
		assert.NotNil(t, comment.EditedAt)
		mockComments.AssertExpectations(t)
	})

	t.Run("unchanged content does not mark edited", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(existing(), nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		comment, err := service.Update(context.Background(), owner, commentID, "original")

		assert.NoError(t, err)
		assert.False(t, comment.IsEdited)
		assert.Nil(t, comment.EditedAt)
		mockComments.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(existing(), nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		comment, err := service.Update(context.Background(), stranger, commentID, "revised")

		assert.Nil(t, comment)
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
		mockComments.AssertExpectations(t)
	})

	t.Run("soft-deleted comment reads as absent", func(t *testing.T) {
		inactive := existing()
		inactive.IsActive = false

		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(inactive, nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		comment, err := service.Update(context.Background(), owner, commentID, "revised")

		assert.Nil(t, comment)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		mockComments.AssertExpectations(t)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ownerID := uuid.New()
	commentID := uuid.New()
	postID := uuid.New()
	owner := &model.User{ID: ownerID, Role: model.RoleUser}
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	active := func() *model.Comment {
		return &model.Comment{
			ID:       commentID,
			AuthorID: ownerID,
			PostID:   postID,
			IsActive: true,
		}
	}

	t.Run("owner soft-deletes", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(active(), nil)
		mockComments.On("SoftDelete", mock.Anything, commentID).Return(nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		assert.NoError(t, service.Delete(context.Background(), owner, commentID))
		mockComments.AssertExpectations(t)
	})

	t.Run("admin soft-deletes someone else's comment", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(active(), nil)
		mockComments.On("SoftDelete", mock.Anything, commentID).Return(nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		assert.NoError(t, service.Delete(context.Background(), admin, commentID))
		mockComments.AssertExpectations(t)
	})

	t.Run("already deleted comment reads as absent", func(t *testing.T) {
		inactive := active()
		inactive.IsActive = false

		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, commentID).Return(inactive, nil)

		service := newCommentService(mockComments, new(MockLikeRepository))
		err := service.Delete(context.Background(), owner, commentID)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		mockComments.AssertExpectations(t)
	})
}

func TestCommentService_ListTopLevel(t *testing.T) {
	postID := uuid.New()
	first := model.Comment{ID: uuid.New(), PostID: postID, IsActive: true}
	second := model.Comment{ID: uuid.New(), PostID: postID, IsActive: true}

	mockComments := new(MockCommentRepository)
	mockLikes := new(MockLikeRepository)

	mockComments.On("ListTopLevel", mock.Anything, postID, 0, 10).
		Return([]model.Comment{first, second}, int64(2), nil)
	mockComments.On("CountReplies", mock.Anything, first.ID).Return(int64(1), nil)
	mockComments.On("CountReplies", mock.Anything, second.ID).Return(int64(0), nil)
	mockLikes.On("Count", mock.Anything, model.LikeTargetComment, first.ID).Return(int64(4), nil)
	mockLikes.On("Count", mock.Anything, model.LikeTargetComment, second.ID).Return(int64(0), nil)

	service := newCommentService(mockComments, mockLikes)
	views, total, err := service.ListTopLevel(context.Background(), postID, 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].RepliesCount)
	assert.Equal(t, int64(4), views[0].LikeCount)

	mockComments.AssertExpectations(t)
	mockLikes.AssertExpectations(t)
}
