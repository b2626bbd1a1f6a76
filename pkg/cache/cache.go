package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per cached resource. Listings churn with every reaction, so they
// stay short; single movies last a bit longer.
const (
	TTLMovies  = 30 * time.Second
	TTLMovie   = 2 * time.Minute
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixMovie  = "movie:"
	PrefixMovies = "movies:"
)

// Service is a Redis-backed cache for movie reads. All methods are nil-safe:
// with no Redis configured the service reports misses and swallows writes.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetMovies(ctx context.Context, listKey string, dest interface{}) error
	SetMovies(ctx context.Context, listKey string, data interface{}) error
	InvalidateMovies(ctx context.Context) error

	GetMovie(ctx context.Context, id uint, dest interface{}) error
	SetMovie(ctx context.Context, id uint, data interface{}) error
	InvalidateMovie(ctx context.Context, id uint) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service backed by the given Redis client
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) GetMovies(ctx context.Context, listKey string, dest interface{}) error {
	return c.Get(ctx, PrefixMovies+listKey, dest)
}

func (c *redisCache) SetMovies(ctx context.Context, listKey string, data interface{}) error {
	return c.Set(ctx, PrefixMovies+listKey, data, TTLMovies)
}

// InvalidateMovies drops every cached listing. Listings are keyed by
// filter+author+page, so a scan over the prefix is the only correct way.
func (c *redisCache) InvalidateMovies(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, PrefixMovies+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}

func (c *redisCache) GetMovie(ctx context.Context, id uint, dest interface{}) error {
	return c.Get(ctx, fmt.Sprintf("%s%d", PrefixMovie, id), dest)
}

func (c *redisCache) SetMovie(ctx context.Context, id uint, data interface{}) error {
	return c.Set(ctx, fmt.Sprintf("%s%d", PrefixMovie, id), data, TTLMovie)
}

func (c *redisCache) InvalidateMovie(ctx context.Context, id uint) error {
	return c.Delete(ctx, fmt.Sprintf("%s%d", PrefixMovie, id))
}
