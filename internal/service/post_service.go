package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloghub/internal/auth"
	"bloghub/internal/cache"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/repository"
)

// minContentLength is re-checked here even though the request validator
// enforces it, so the invariant does not depend on the HTTP layer.
const minContentLength = 10

// CreatePostInput carries fields for post creation.
type CreatePostInput struct {
	Title   string
	Content string
	Excerpt string
	Tags    []string
	Status  model.PostStatus
}

// UpdatePostInput carries optional fields for post updates; nil means unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Excerpt *string
	Tags    []string
	Status  *model.PostStatus
}

// PostView is a post enriched with its derived counters and like set.
type PostView struct {
	model.Post
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	Likes        []uuid.UUID `json:"likes"`
}

// PostService handles the post lifecycle.
type PostService interface {
	Create(ctx context.Context, author *model.User, input CreatePostInput) (*model.Post, error)
	Update(ctx context.Context, principal *model.User, id uuid.UUID, input UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, principal *model.User, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*PostView, error)
	List(ctx context.Context, page, limit int) ([]model.Post, int64, error)
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	cache    *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	cacheClient *cache.Client,
) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		cache:    cacheClient,
	}
}

// Create stores a new post owned by author. The excerpt is derived from
// content when not supplied.
func (s *postService) Create(ctx context.Context, author *model.User, input CreatePostInput) (*model.Post, error) {
	if len(input.Content) < minContentLength {
		return nil, apperrors.NewValidationError("content", fmt.Sprintf("must be at least %d characters", minContentLength))
	}

	status := input.Status
	if status == "" {
		status = model.PostStatusDraft
	}

	excerpt := input.Excerpt
	if excerpt == "" {
		excerpt = model.DeriveExcerpt(input.Content)
	}

	post := &model.Post{
		Title:       input.Title,
		Content:     input.Content,
		Excerpt:     excerpt,
		AuthorID:    author.ID,
		Tags:        input.Tags,
		Status:      status,
		IsPublished: status == model.PostStatusPublished,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update applies the supplied fields after an ownership check. The excerpt
// is re-derived when content changes without an explicit excerpt.
func (s *postService) Update(ctx context.Context, principal *model.User, id uuid.UUID, input UpdatePostInput) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(principal, post); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		if len(*input.Content) < minContentLength {
			return nil, apperrors.NewValidationError("content", fmt.Sprintf("must be at least %d characters", minContentLength))
		}
		post.Content = *input.Content
		if input.Excerpt == nil {
			post.Excerpt = model.DeriveExcerpt(post.Content)
		}
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if input.Status != nil {
		post.Status = *input.Status
		post.IsPublished = post.Status == model.PostStatusPublished
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete hard-deletes the post after an ownership check; its comments and
// like rows go with it.
func (s *postService) Delete(ctx context.Context, principal *model.User, id uuid.UUID) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckOwnership(principal, post); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	s.cache.Delete(ctx, cache.CommentCountKey(id))
	return nil
}

// Get is a side-effecting read: every successful fetch increments the view
// counter, regardless of caller identity.
func (s *postService) Get(ctx context.Context, id uuid.UUID) (*PostView, error) {
	if err := s.posts.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("increment views: %w", err)
	}

	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	likes, err := s.likes.UserIDs(ctx, model.LikeTargetPost, id)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}

	commentCount, err := s.commentCount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PostView{
		Post:         *post,
		LikeCount:    int64(len(likes)),
		CommentCount: commentCount,
		Likes:        likes,
	}, nil
}

func (s *postService) List(ctx context.Context, page, limit int) ([]model.Post, int64, error) {
	page, limit = normalizePage(page, limit)
	posts, total, err := s.posts.List(ctx, pageOffset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// commentCount reads the top-level comment count through the cached
// projection; comment writes invalidate it.
func (s *postService) commentCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	key := cache.CommentCountKey(postID)
	if n, ok := s.cache.GetCount(ctx, key); ok {
		return n, nil
	}
	n, err := s.comments.CountTopLevel(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	s.cache.SetCount(ctx, key, n)
	return n, nil
}

func (s *postService) findPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}
