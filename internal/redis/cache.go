package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"pollbox/internal/domain/poll"
)

// Cache key patterns:
// - polls:user:{user_id} - per-user poll listing, short TTL, invalidated
//   on poll create/delete

// CacheConfig contains configuration for caching
type CacheConfig struct {
	ListingTTL time.Duration // TTL for poll listing cache (default 1m)
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		ListingTTL: time.Minute,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

// GetUserPolls retrieves a user's poll listing from cache. The bool is
// false on a miss.
func (c *CacheStore) GetUserPolls(ctx context.Context, userID uuid.UUID) ([]poll.Poll, bool, error) {
	key := listingKey(userID)
	data, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, false, nil // Cache miss
	}
	if err != nil {
		return nil, false, err
	}

	var polls []poll.Poll
	if err := json.Unmarshal([]byte(data), &polls); err != nil {
		return nil, false, err
	}
	return polls, true, nil
}

// SetUserPolls stores a user's poll listing in cache
func (c *CacheStore) SetUserPolls(ctx context.Context, userID uuid.UUID, polls []poll.Poll) error {
	data, err := json.Marshal(polls)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingKey(userID), data, c.config.ListingTTL).Err()
}

// InvalidateUserPolls removes a user's poll listing from cache
func (c *CacheStore) InvalidateUserPolls(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, listingKey(userID)).Err()
}

func listingKey(userID uuid.UUID) string {
	return fmt.Sprintf("polls:user:%s", userID.String())
}
