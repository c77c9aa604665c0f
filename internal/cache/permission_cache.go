package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PermissionCache keeps a staff member's grant set in Redis so the permission
// engine does not hit the database on every request. Writers must invalidate
// synchronously (grant, bulk grant, revoke, staff deletion) — a stale allow is
// a security bug, so invalidation never runs in the background.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPermissionCache creates a new permission cache instance. When Redis is
// unreachable the cache degrades to a no-op rather than failing startup.
func NewPermissionCache(host string, port int, password string, db int, ttlSeconds int) (*PermissionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return &PermissionCache{
			client: nil,
			ttl:    time.Duration(ttlSeconds) * time.Second,
		}, nil
	}

	return &PermissionCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (c *PermissionCache) cacheKey(staffID uuid.UUID) string {
	return fmt.Sprintf("grants:%s", staffID.String())
}

// Get retrieves the cached grant set for a staff member, keyed
// "resource:action" -> granted. The second return value is false on a miss.
func (c *PermissionCache) Get(ctx context.Context, staffID uuid.UUID) (map[string]bool, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, c.cacheKey(staffID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var grants map[string]bool
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, false, err
	}
	return grants, true, nil
}

// Set caches the grant set for a staff member.
func (c *PermissionCache) Set(ctx context.Context, staffID uuid.UUID, grants map[string]bool) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(grants)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.cacheKey(staffID), data, c.ttl).Err()
}

// Invalidate removes the cached grant set for a staff member.
func (c *PermissionCache) Invalidate(ctx context.Context, staffID uuid.UUID) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.cacheKey(staffID)).Err()
}

// GrantKey builds the lookup key for one (resource, action) pair.
func GrantKey(resource, action string) string {
	return resource + ":" + action
}

// IsAvailable returns true if Redis is connected.
func (c *PermissionCache) IsAvailable() bool {
	return c.client != nil
}

// Close closes the Redis connection.
func (c *PermissionCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
