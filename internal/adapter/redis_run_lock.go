package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qbank/internal/cache"

	"github.com/redis/go-redis/v9"
)

// RedisRunLock is a best-effort owner-tagged lock on a single key.
type RedisRunLock struct {
	client redis.Cmdable
	key    string
}

func NewRedisRunLock(client redis.Cmdable) *RedisRunLock {
	return &RedisRunLock{client: client, key: cache.MigrationLockKey()}
}

func (l *RedisRunLock) Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	return ok, nil
}

func (l *RedisRunLock) Refresh(ctx context.Context, owner string, ttl time.Duration) error {
	held, err := l.holder(ctx)
	if err != nil {
		return err
	}
	if held != owner {
		return fmt.Errorf("run lock held by %q, not %q", held, owner)
	}
	return l.client.Expire(ctx, l.key, ttl).Err()
}

func (l *RedisRunLock) Release(ctx context.Context, owner string) error {
	held, err := l.holder(ctx)
	if err != nil {
		return err
	}
	if held != owner {
		return nil
	}
	return l.client.Del(ctx, l.key).Err()
}

func (l *RedisRunLock) holder(ctx context.Context) (string, error) {
	val, err := l.client.Get(ctx, l.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read run lock: %w", err)
	}
	return val, nil
}
