package qrcode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Cache that holds no entry for a key.
var ErrCacheMiss = errors.New("qr cache miss")

// Cache stores rendered codes by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, img []byte, ttl time.Duration) error
}

// RedisCache keeps codes in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	img, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return img, err
}

func (c *RedisCache) Set(ctx context.Context, key string, img []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, img, ttl).Err()
}

func cacheKey(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return "qr:" + hex.EncodeToString(sum[:])
}
