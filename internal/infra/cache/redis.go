package cache

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned by every method of a nil *RedisCache, so callers
// can treat a missing Redis exactly like a failing one.
var ErrDisabled = errors.New("cache: redis not configured")

// Nil reports a missing key.
const Nil = redis.Nil

type RedisCache struct {
	client *redis.Client
}

func New(cfg *config.Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: rdb}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return ErrDisabled
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *RedisCache) SetWithRandomTTL(ctx context.Context, key string, value interface{}, baseTTL time.Duration) error {
	if c == nil {
		return ErrDisabled
	}
	// ±10% jitter so keys written together do not expire together
	jitter := time.Duration(rand.Int63n(int64(baseTTL/5)) - int64(baseTTL/10))
	actualTTL := baseTTL + jitter
	if actualTTL < 0 {
		actualTTL = baseTTL
	}

	return c.client.Set(ctx, key, value, actualTTL).Err()
}

// SetNX sets key only if it does not exist and reports whether it did.
func (c *RedisCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if c == nil {
		return false, ErrDisabled
	}
	return c.client.SetNX(ctx, key, value, expiration).Result()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", ErrDisabled
	}
	return c.client.Get(ctx, key).Result()
}

func (c *RedisCache) MGet(ctx context.Context, keys ...string) ([]interface{}, error) {
	if c == nil {
		return nil, ErrDisabled
	}
	return c.client.MGet(ctx, keys...).Result()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if c == nil {
		return ErrDisabled
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	if c == nil {
		return 0, ErrDisabled
	}
	return c.client.Incr(ctx, key).Result()
}

// IncrWithTTL increments key and refreshes its expiry in one round trip.
func (c *RedisCache) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if c == nil {
		return 0, ErrDisabled
	}
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCache) ZIncrBy(ctx context.Context, key string, increment float64, member string) (float64, error) {
	if c == nil {
		return 0, ErrDisabled
	}
	return c.client.ZIncrBy(ctx, key, increment, member).Result()
}

func (c *RedisCache) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]redis.Z, error) {
	if c == nil {
		return nil, ErrDisabled
	}
	return c.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
}

func (c *RedisCache) Publish(ctx context.Context, channel string, message interface{}) error {
	if c == nil {
		return ErrDisabled
	}
	return c.client.Publish(ctx, channel, message).Err()
}

func (c *RedisCache) Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error) {
	if c == nil {
		return nil, ErrDisabled
	}
	return c.client.Subscribe(ctx, channels...), nil
}

func (c *RedisCache) AllowRequest(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, ErrDisabled
	}
	// INCR, and set the window expiry on the first hit only
	const script = `
        local current = redis.call("INCR", KEYS[1])
        if tonumber(current) == 1 then
            redis.call("EXPIRE", KEYS[1], ARGV[1])
        end
        return current
    `

	count, err := c.client.Eval(ctx, script, []string{key}, int(window.Seconds())).Int()
	if err != nil {
		return true, err
	}

	return count <= limit, nil
}
