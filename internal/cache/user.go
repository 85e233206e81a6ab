package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/stickynotes/stickynotes/internal/model"
)

const (
	// userCachePrefix is the Redis key prefix for cached user profiles.
	userCachePrefix = "user:"
	// UserCacheTTL is the time-to-live for cached user profiles.
	UserCacheTTL = 5 * time.Minute
)

// GetUser retrieves a cached user profile by ID.
// Returns nil if not found (cache miss).
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	key := userCachePrefix + id

	var cached model.CachedUser
	cmd := c.client.HGetAll(ctx, key)
	if err := cmd.Err(); err != nil {
		return nil, fmt.Errorf("get cached user: %w", err)
	}
	if len(cmd.Val()) == 0 {
		return nil, nil
	}
	if err := cmd.Scan(&cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return cached.ToUser(id), nil
}

// SetUser caches a user profile. The password hash is never written.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userCachePrefix + user.ID

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, user.ToCachedUser())
	pipe.Expire(ctx, key, UserCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set cached user: %w", err)
	}
	return nil
}

// DeleteUser removes a cached user profile.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	return c.client.Del(ctx, userCachePrefix+id).Err()
}
