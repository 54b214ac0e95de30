package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 15 * time.Minute

// RedisRegistry backs the in-flight registry with Redis so the
// at-most-one-computation guarantee holds across service instances.
// Keys are taken with SET NX and carry a TTL as a crash backstop: a
// holder that dies without releasing loses the key when it expires.
type RedisRegistry struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisRegistry{
		client: client,
		prefix: "inflight:",
		ttl:    ttl,
	}
}

func (r *RedisRegistry) TryAcquire(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis registry: acquire %q: %w", key, err)
	}
	return ok, nil
}

func (r *RedisRegistry) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis registry: release %q: %w", key, err)
	}
	return nil
}

func (r *RedisRegistry) Contains(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis registry: check %q: %w", key, err)
	}
	return n > 0, nil
}
