package libs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoginLimiter counts failed logins per key in a fixed window that
// starts at the first failure.
type RedisLoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func loginKey(key string) string {
	return "login_failures:" + key
}

func (l *RedisLoginLimiter) Locked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, loginKey(key)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= l.maxAttempts, nil
}

func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	n, err := l.client.Incr(ctx, loginKey(key)).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.client.Expire(ctx, loginKey(key), l.window).Err()
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, loginKey(key)).Err()
}
