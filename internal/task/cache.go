package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the owner's task list is not cached
var ErrCacheMiss = errors.New("task list not in cache")

const taskListTTL = 5 * time.Minute

// RedisCache caches per-owner task lists in Redis. Entries are written on
// list reads and dropped on every write by that owner, so a cached list is
// never older than the owner's last mutation plus the TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// listKey generates the Redis key for an owner's task list
func listKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("tasks:owner:%s", ownerID.String())
}

// Get retrieves the cached task list for an owner
func (c *RedisCache) Get(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	data, err := c.client.Get(ctx, listKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached task list: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode cached task list: %w", err)
	}

	return tasks, nil
}

// Set stores the task list for an owner with a short TTL
func (c *RedisCache) Set(ctx context.Context, ownerID uuid.UUID, tasks []Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode task list: %w", err)
	}

	if err := c.client.Set(ctx, listKey(ownerID), data, taskListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache task list: %w", err)
	}

	return nil
}

// Invalidate drops the cached task list for an owner
func (c *RedisCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, listKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate task list: %w", err)
	}

	return nil
}
