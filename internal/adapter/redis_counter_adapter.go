package adapter

import (
	"context"
	"fmt"
	"strconv"

	"qbank/internal/cache"
	"qbank/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisAggregateCounter keeps one sorted set per namespace. Members are
// question ids scored by creation time in milliseconds; Redis orders equal
// scores by member, so ids break ties.
//
// A namespace is only trusted once it appears in the seeded set. Writes to
// unseeded namespaces are harmless because Reseed starts from an empty key.
type RedisAggregateCounter struct {
	client redis.Cmdable
}

func NewRedisAggregateCounter(client redis.Cmdable) *RedisAggregateCounter {
	return &RedisAggregateCounter{client: client}
}

func (r *RedisAggregateCounter) Count(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	key := cache.CounterKey(ns.Key())

	pipe := r.client.Pipeline()
	seeded := pipe.SIsMember(ctx, cache.CounterSeededKey(), ns.Key())
	var count *redis.IntCmd
	if bounds == nil {
		count = pipe.ZCard(ctx, key)
	} else {
		count = pipe.ZCount(ctx, key, scoreBound(bounds.FromMillis, "-inf"), scoreBound(bounds.ToMillis, "+inf"))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", ns, err)
	}

	if !seeded.Val() {
		return 0, domain.ErrCounterMiss
	}
	return count.Val(), nil
}

func (r *RedisAggregateCounter) OnInsert(ctx context.Context, q *domain.Question) error {
	member := redis.Z{Score: float64(q.CreatedAt.UnixMilli()), Member: q.ID}

	pipe := r.client.TxPipeline()
	for _, ns := range q.Namespaces() {
		pipe.ZAdd(ctx, cache.CounterKey(ns.Key()), member)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add question %s to counters: %w", q.ID, err)
	}
	return nil
}

func (r *RedisAggregateCounter) OnDelete(ctx context.Context, q *domain.Question) error {
	pipe := r.client.TxPipeline()
	for _, ns := range q.Namespaces() {
		pipe.ZRem(ctx, cache.CounterKey(ns.Key()), q.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove question %s from counters: %w", q.ID, err)
	}
	return nil
}

func (r *RedisAggregateCounter) Reseed(ctx context.Context, ns domain.Namespace, refs []domain.QuestionRef) error {
	key := cache.CounterKey(ns.Key())

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(refs) > 0 {
		members := make([]redis.Z, 0, len(refs))
		for _, ref := range refs {
			members = append(members, redis.Z{Score: float64(ref.CreatedAt.UnixMilli()), Member: ref.ID})
		}
		pipe.ZAdd(ctx, key, members...)
	}
	pipe.SAdd(ctx, cache.CounterSeededKey(), ns.Key())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reseed counter %s: %w", ns, err)
	}
	return nil
}

func (r *RedisAggregateCounter) Init(ctx context.Context, ns domain.Namespace) error {
	if err := r.client.SAdd(ctx, cache.CounterSeededKey(), ns.Key()).Err(); err != nil {
		return fmt.Errorf("failed to initialize counter %s: %w", ns, err)
	}
	return nil
}

func (r *RedisAggregateCounter) Drop(ctx context.Context, ns domain.Namespace) error {
	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, cache.CounterSeededKey(), ns.Key())
	pipe.Del(ctx, cache.CounterKey(ns.Key()))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to drop counter %s: %w", ns, err)
	}
	return nil
}

func scoreBound(millis int64, open string) string {
	if millis == 0 {
		return open
	}
	return strconv.FormatInt(millis, 10)
}
