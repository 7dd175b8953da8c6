package cache

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores small serialized values, such as département statistics,
// between requests.
type Cache interface {
	// Get returns the value and true, or false when the key is absent
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Incr atomically increments the counter stored at key, starting from 0
	Incr(ctx context.Context, key string) (int64, error)
}

// Noop is used when no cache backend is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error         { return nil }
func (Noop) Incr(context.Context, string) (int64, error)       { return 0, nil }

// Redis is a Cache backed by a redis server. Keys are namespaced with prefix
// and expire after ttl.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to addr and checks the server answers.
func NewRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return NewRedisWithClient(client, ttl), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: "territoire:", ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Incr bumps a counter. Counters carry no TTL so a version never goes back.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, r.prefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

// Close releases the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// StatsVersionKey holds the counter bumped whenever a write touches the
// département. Stats are cached under the version read before computing
// them, so a computation racing a write fills a key nobody reads anymore.
func StatsVersionKey(code string) string {
	return "stats:version:" + code
}

// StatsKey is the key under which a département's statistics are cached
// for the given version.
func StatsKey(code string, version int64) string {
	return fmt.Sprintf("stats:departement:%s:v%d", code, version)
}
