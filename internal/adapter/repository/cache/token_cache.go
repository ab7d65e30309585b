package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache keeps the active session token per user so a logout invalidates
// it everywhere.
type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return c.client.Set(ctx, "session:"+userID, token, ttl).Err()
}

func (c *TokenCache) InvalidateToken(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "session:"+userID).Err()
}
