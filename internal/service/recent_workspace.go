package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const recentWorkspaceTTL = 30 * 24 * time.Hour

// RecentWorkspaceCache remembers the last workspace a user selected.
type RecentWorkspaceCache interface {
	// Get returns the cached slug, or "" when nothing is cached.
	Get(ctx context.Context, userID int64) (string, error)
	Set(ctx context.Context, userID int64, slug string) error
}

type redisRecentWorkspaceCache struct {
	client *redis.Client
}

func NewRedisRecentWorkspaceCache(client *redis.Client) RecentWorkspaceCache {
	return &redisRecentWorkspaceCache{client: client}
}

func recentWorkspaceKey(userID int64) string {
	return "recent_workspace:" + strconv.FormatInt(userID, 10)
}

func (c *redisRecentWorkspaceCache) Get(ctx context.Context, userID int64) (string, error) {
	slug, err := c.client.Get(ctx, recentWorkspaceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading recent workspace: %w", err)
	}
	return slug, nil
}

func (c *redisRecentWorkspaceCache) Set(ctx context.Context, userID int64, slug string) error {
	if err := c.client.Set(ctx, recentWorkspaceKey(userID), slug, recentWorkspaceTTL).Err(); err != nil {
		return fmt.Errorf("writing recent workspace: %w", err)
	}
	return nil
}
