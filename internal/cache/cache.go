package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CommentCountTTL bounds how stale a comment-count projection may get if an
// invalidation is lost while redis is flapping.
const CommentCountTTL = 10 * time.Minute

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// fail safe: ignore redis errors
		return nil
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}

// CommentCountKey is the projection key for a post's top-level comment count.
func CommentCountKey(postID uuid.UUID) string {
	return fmt.Sprintf("post:%s:comment_count", postID)
}

// GetCount reads a cached integer projection. ok is false on miss,
// parse failure, or redis being unavailable.
func (c *Client) GetCount(ctx context.Context, key string) (int64, bool) {
	raw, _ := c.Get(ctx, key)
	if raw == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetCount stores an integer projection with the default projection TTL.
func (c *Client) SetCount(ctx context.Context, key string, n int64) {
	_ = c.Set(ctx, key, []byte(strconv.FormatInt(n, 10)), CommentCountTTL)
}
