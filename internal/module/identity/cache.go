package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const identityKeyPrefix = "identity:"

// Cache stores resolved identities keyed by token subject. Entries carry a
// bounded TTL and expire rather than being invalidated.
type Cache interface {
	Get(ctx context.Context, subject string) (*Identity, error)
	Set(ctx context.Context, subject string, id *Identity) error
}

// redisCache implements Cache on Redis.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed identity cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, subject string) (*Identity, error) {
	val, err := c.client.Get(ctx, identityKeyPrefix+subject).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var id Identity
	if err := json.Unmarshal(val, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *redisCache) Set(ctx context.Context, subject string, id *Identity) error {
	val, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, identityKeyPrefix+subject, val, c.ttl).Err()
}
