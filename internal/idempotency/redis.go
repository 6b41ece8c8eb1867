// Package idempotency serializes payment processing per order id.
// The order id is the natural idempotency key: a retried submission for
// the same order must not race into a second charge.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "payment_lock:"

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, keyPrefix+key, "1", ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("releasing lock for %s: %w", key, err)
	}
	return nil
}
