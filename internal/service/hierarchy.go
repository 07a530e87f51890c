package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"qbank/internal/cache"
	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	hierarchyCacheTTL  = 10 * time.Minute
	hierarchyMemoryTTL = 30 * time.Second
)

// HierarchyBuilder maintains the denormalized theme/subtheme/group view.
//
// Every taxonomy mutation bumps the generation and enqueues a rebuild. The
// queue holds one pending trigger, so bursts of writes collapse into one job,
// and a failed build is re-enqueued after retryDelay. Callers that must see
// their own write call Await.
type HierarchyBuilder struct {
	repo       domain.TaxonomyRepository
	cache      domain.Cache
	retryDelay time.Duration

	generation atomic.Uint64
	current    atomic.Pointer[domain.Hierarchy]
	builds     singleflight.Group
	trigger    chan struct{}
}

func NewHierarchyBuilder(repo domain.TaxonomyRepository, cache domain.Cache, retryDelay time.Duration) *HierarchyBuilder {
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	return &HierarchyBuilder{
		repo:       repo,
		cache:      cache,
		retryDelay: retryDelay,
		trigger:    make(chan struct{}, 1),
	}
}

// Enqueue records a taxonomy change and schedules a rebuild.
func (b *HierarchyBuilder) Enqueue() {
	b.generation.Add(1)
	b.signal()
}

func (b *HierarchyBuilder) signal() {
	select {
	case b.trigger <- struct{}{}:
	default:
	}
}

// Run consumes rebuild jobs until ctx is cancelled.
func (b *HierarchyBuilder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.trigger:
		}

		if _, err := b.build(ctx); err != nil {
			logger.Get().Error("Hierarchy rebuild failed, retrying", zap.Error(err), zap.Duration("delay", b.retryDelay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(b.retryDelay):
				b.signal()
			}
		}
	}
}

// Await returns a view that reflects every change enqueued before the call.
func (b *HierarchyBuilder) Await(ctx context.Context) (*domain.Hierarchy, error) {
	if h := b.current.Load(); h != nil && h.Generation >= b.generation.Load() {
		return h, nil
	}
	return b.build(ctx)
}

// Get serves the freshest cheap view: memory, then the shared cache, then a build.
func (b *HierarchyBuilder) Get(ctx context.Context) (*domain.Hierarchy, error) {
	gen := b.generation.Load()
	if h := b.current.Load(); h != nil && h.Generation >= gen && time.Since(h.BuiltAt) < hierarchyMemoryTTL {
		return h, nil
	}

	if gen == 0 && b.cache != nil {
		raw, err := b.cache.Get(ctx, cache.HierarchyKey())
		if err == nil {
			var h domain.Hierarchy
			if jsonErr := json.Unmarshal([]byte(raw), &h); jsonErr == nil {
				h.Generation = gen
				h.BuiltAt = time.Now()
				b.store(&h)
				return &h, nil
			}
			logger.Get().Warn("Discarding unreadable cached hierarchy")
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Hierarchy cache read failed", zap.Error(err))
		}
	}

	return b.build(ctx)
}

// build loads every node once per generation; concurrent callers share the result.
func (b *HierarchyBuilder) build(ctx context.Context) (*domain.Hierarchy, error) {
	gen := b.generation.Load()
	v, err, _ := b.builds.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		nodes, err := b.repo.ListAll(ctx)
		if err != nil {
			metrics.HierarchyRebuilds.WithLabelValues("failure").Inc()
			return nil, domain.NewInternalError("Failed to load taxonomy nodes", err)
		}
		h := domain.BuildHierarchy(nodes, gen)
		b.store(h)
		b.publish(ctx, h)
		metrics.HierarchyRebuilds.WithLabelValues("success").Inc()
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Hierarchy), nil
}

// store keeps the newest generation.
func (b *HierarchyBuilder) store(h *domain.Hierarchy) {
	for {
		cur := b.current.Load()
		if cur != nil && cur.Generation > h.Generation {
			return
		}
		if b.current.CompareAndSwap(cur, h) {
			return
		}
	}
}

func (b *HierarchyBuilder) publish(ctx context.Context, h *domain.Hierarchy) {
	if b.cache == nil {
		return
	}
	data, err := json.Marshal(h)
	if err != nil {
		logger.Get().Error("Failed to encode hierarchy", zap.Error(err))
		return
	}
	if err := b.cache.Set(ctx, cache.HierarchyKey(), string(data), hierarchyCacheTTL); err != nil {
		logger.Get().Warn("Failed to cache hierarchy", zap.Error(err))
	}
}
