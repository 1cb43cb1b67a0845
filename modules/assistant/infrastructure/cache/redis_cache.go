package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/cache"
)

type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.prefixed(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", cache.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string) error {
	return c.client.Set(ctx, c.prefixed(key), value, c.ttl).Err()
}

func (c *RedisCache) prefixed(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}
