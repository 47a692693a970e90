package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"property-service/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON documents under namespaced, generation-stamped keys.
type Cache interface {
	// Get decodes the value at key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// Generation returns the current generation of a namespace.
	Generation(ctx context.Context, namespace string) (int64, error)
	// Bump advances a namespace generation, orphaning every key built from the old one.
	Bump(ctx context.Context, namespace string) error
}

// RedisCache is a Cache on Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and pings it.
func NewRedisCache(ctx context.Context, cfg *config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Generation(ctx context.Context, namespace string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation %s: %w", namespace, err)
	}
	return gen, nil
}

func (c *RedisCache) Bump(ctx context.Context, namespace string) error {
	if err := c.client.Incr(ctx, generationKey(namespace)).Err(); err != nil {
		return fmt.Errorf("cache bump %s: %w", namespace, err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func generationKey(namespace string) string {
	return "gen:" + namespace
}

// QueryKey builds a key from a namespace, its generation and query parameters.
// Parameter order does not affect the key.
func QueryKey(namespace string, generation int64, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}
	sum := md5.Sum([]byte(b.String()))
	return fmt.Sprintf("%s:%d:%s", namespace, generation, hex.EncodeToString(sum[:]))
}
